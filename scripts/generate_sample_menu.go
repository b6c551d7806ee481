package main

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
)

// Writes a sample menu CSV for `pos menu import`, including a couple of
// deliberately broken rows to exercise the per-row skip policy.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	path := filepath.Join(dataDir, "menu.csv")
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	rows := [][]string{
		{"item_name", "category", "price", "gst"},
		{"Margherita Pizza", "Food", "250", "5"},
		{"Paneer Butter Masala", "Food", "300", "5"},
		{"Masala Dosa", "Food", "150", "5"},
		{"Veg Biryani", "Food", "220", "5"},
		{"Coke", "Drink", "50", "5"},
		{"Fresh Lime Soda", "Drink", "60", "12"},
		{"Ice Cream", "Dessert", "100", "5"},
		{"Gulab Jamun", "Dessert", "80", "5"},
		// Bad rows: importer should skip these and keep going
		{"Broken Price", "Food", "free", "5"},
		{"", "Food", "100", "5"},
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			log.Fatalf("Failed to write row: %v", err)
		}
	}

	log.Printf("Sample menu written to %s", path)
}
