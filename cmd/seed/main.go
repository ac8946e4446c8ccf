// seed genera un script SQL con el catálogo demo del taller: ingredientes,
// productos terminados, la receta del Eskimo Coconut y un usuario admin.
//
// Uso: go run ./cmd/seed [-password <admin password>]
// Escribe: migrations/002_seed_demo.sql
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedItem struct {
	id           string
	sku          string
	name         string
	category     string
	unit         string // GRAM | PIECE
	stock        string
	pieceWeight  string // "NULL" o gramos por pieza
	unitsPerPack string // "NULL" o piezas por caja
	minStock     string
}

type seedRecipeLine struct {
	ingredientSKU string
	amount        string
}

func main() {
	password := flag.String("password", "changeme123", "password del usuario admin")
	out := flag.String("out", "migrations/002_seed_demo.sql", "ruta del SQL generado")
	flag.Parse()

	items := []seedItem{
		{sku: "ING-COCONUT", name: "Coconut Meat", category: "ingrediente", unit: "GRAM", stock: "5000", pieceWeight: "NULL", unitsPerPack: "NULL", minStock: "1000"},
		{sku: "ING-WATER", name: "Coconut Water", category: "ingrediente", unit: "GRAM", stock: "2000", pieceWeight: "NULL", unitsPerPack: "NULL", minStock: "500"},
		{sku: "ING-SUGAR", name: "Sugar", category: "ingrediente", unit: "GRAM", stock: "3000", pieceWeight: "NULL", unitsPerPack: "NULL", minStock: "500"},
		{sku: "ING-VANILLA", name: "Vanilla Extract", category: "ingrediente", unit: "GRAM", stock: "500", pieceWeight: "NULL", unitsPerPack: "NULL", minStock: "100"},
		{sku: "ING-CACAO", name: "Cacao Nibs", category: "ingrediente", unit: "GRAM", stock: "8000", pieceWeight: "NULL", unitsPerPack: "NULL", minStock: "2000"},
		{sku: "ING-STICK", name: "Popsicle Stick", category: "empaque", unit: "PIECE", stock: "100", pieceWeight: "NULL", unitsPerPack: "50", minStock: "50"},
		// Bombón almacenado en gramos con peso por pieza: se puede ingresar
		// "10 pieces" o "2 boxes" y el sistema lo lleva a gramos.
		{sku: "PRD-BONBON", name: "Dark Bonbon", category: "producto", unit: "GRAM", stock: "0", pieceWeight: "12.5", unitsPerPack: "24", minStock: "0"},
		{sku: "PRD-ESKIMO", name: "Eskimo Coconut", category: "producto", unit: "PIECE", stock: "0", pieceWeight: "NULL", unitsPerPack: "NULL", minStock: "0"},
	}
	for i := range items {
		items[i].id = uuid.New().String()
	}
	idBySKU := make(map[string]string, len(items))
	for _, it := range items {
		idBySKU[it.sku] = it.id
	}

	// Receta del Eskimo Coconut, por unidad producida.
	recipe := []seedRecipeLine{
		{ingredientSKU: "ING-COCONUT", amount: "50"},
		{ingredientSKU: "ING-WATER", amount: "16.6"},
		{ingredientSKU: "ING-SUGAR", amount: "25"},
		{ingredientSKU: "ING-VANILLA", amount: "1"},
		{ingredientSKU: "ING-STICK", amount: "1"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}

	var b strings.Builder
	b.WriteString("-- Catálogo demo del taller. Generado por cmd/seed.\n\n")

	for _, it := range items {
		fmt.Fprintf(&b,
			"INSERT INTO items (id, sku, name, category, canonical_unit, current_stock, piece_weight_grams, units_per_package, min_stock, is_active)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s, %s, %s, %s, TRUE)\n"+
				"ON CONFLICT (sku) DO NOTHING;\n\n",
			it.id, it.sku, sqlEscape(it.name), it.category, it.unit,
			it.stock, it.pieceWeight, it.unitsPerPack, it.minStock,
		)
	}

	productID := idBySKU["PRD-ESKIMO"]
	for pos, line := range recipe {
		fmt.Fprintf(&b,
			"INSERT INTO recipe_lines (product_id, ingredient_id, amount_per_unit, position)\n"+
				"VALUES ('%s', '%s', %s, %d)\n"+
				"ON CONFLICT (product_id, ingredient_id) DO NOTHING;\n\n",
			productID, idBySKU[line.ingredientSKU], line.amount, pos,
		)
	}

	fmt.Fprintf(&b,
		"INSERT INTO users (id, email, password_hash, name, role, status)\n"+
			"VALUES ('%s', 'admin@chocodealers.local', '%s', 'Admin', 'admin', 'active')\n"+
			"ON CONFLICT (email) DO NOTHING;\n",
		uuid.New().String(), string(hash),
	)

	if err := os.WriteFile(*out, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "escribir %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s (%d artículos, %d líneas de receta)\n", *out, len(items), len(recipe))
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
