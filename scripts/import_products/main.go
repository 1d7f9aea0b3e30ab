package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Bulk catalog import from a spreadsheet. Columns per row:
// name | description | category | price (EUR, e.g. 2.00) | rarity (optional)
// Regular catalog items leave rarity empty; rows with a rarity go into the
// lootbox reward pool for that tier.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: import_products <file.xlsx>")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"), os.Getenv("DB_SSLMODE"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	totalImported := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 4 { // Skip header or invalid rows
				continue
			}

			name := strings.TrimSpace(row[0])
			if name == "" {
				continue
			}

			priceCents, err := parsePriceCents(row[3])
			if err != nil {
				fmt.Printf("Invalid price %q in row %d: %v\n", row[3], i+1, err)
				continue
			}

			rarity := ""
			if len(row) > 4 {
				rarity = strings.ToLower(strings.TrimSpace(row[4]))
			}
			if rarity != "" && !models.ValidRarity(rarity) {
				fmt.Printf("Invalid rarity %q in row %d\n", rarity, i+1)
				continue
			}

			product := models.Product{
				Name:        name,
				Slug:        utils.Slugify(name),
				Description: strings.TrimSpace(row[1]),
				Category:    strings.TrimSpace(row[2]),
				Price:       priceCents,
				Rarity:      rarity,
			}

			result := db.Where("slug = ?", product.Slug).FirstOrCreate(&product)
			if result.Error != nil {
				fmt.Printf("Error importing row %d: %v\n", i+1, result.Error)
				continue
			}
			if result.RowsAffected > 0 {
				totalImported++
			}
		}
	}

	fmt.Printf("Imported %d new products\n", totalImported)
}

func parsePriceCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "€"))
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("price must be positive")
	}
	return int64(value*100 + 0.5), nil
}
