package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrItemNotFound      = errors.New("artículo no encontrado")
	ErrDuplicate         = errors.New("el registro ya existe")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrNoRecipeDefined   = errors.New("el producto no tiene receta definida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnrecognizedUnit  = errors.New("unidad no reconocida")
)

// InsufficientStockError indica que una salida dejaría el stock en negativo.
// Lleva el artículo y las cantidades (en unidad canónica) para que la capa
// de presentación arme el mensaje; envuelve ErrInsufficientStock.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %q: solicitado %s, disponible %s",
		e.ItemName, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// UnrecognizedUnitError indica que el conversor no pudo resolver la unidad
// ingresada. Nunca se adivina una unidad: es un fallo duro, no un fallback.
type UnrecognizedUnitError struct {
	Unit string
}

func (e *UnrecognizedUnitError) Error() string {
	return fmt.Sprintf("unidad no reconocida: %q", e.Unit)
}

func (e *UnrecognizedUnitError) Unwrap() error { return ErrUnrecognizedUnit }
