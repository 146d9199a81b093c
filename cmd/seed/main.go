// Seeds the ingredient catalog from an XLSX file with two columns per row:
// ingredient name and measurement unit. A header row is detected and skipped.
//
// Usage:
//
//	go run cmd/seed/main.go [-clear] data/ingredients.xlsx
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/avolkova/foodgram-backend/config"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/app/service"
	"github.com/avolkova/foodgram-backend/internal/db"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

func main() {
	clear := flag.Bool("clear", false, "drop the existing catalog before importing")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: go run cmd/seed/main.go [-clear] <xlsx_file_path>")
	}
	filePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	entries, err := readCatalogFile(filePath)
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}

	ingredientRepo := repository.NewIngredientRepository(db.GetDB())
	ingredientService := service.NewIngredientService(ingredientRepo)

	count, err := ingredientService.ImportCatalog(entries, *clear)
	if err != nil {
		log.Fatalf("Failed to import catalog: %v", err)
	}

	logger.Info("Catalog import finished", map[string]interface{}{
		"file":     filePath,
		"imported": count,
	})
}

func readCatalogFile(filePath string) ([]service.IngredientImport, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	entries := make([]service.IngredientImport, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		unit := strings.TrimSpace(row[1])
		if name == "" || unit == "" {
			continue
		}
		// Skip a header row like "name,measurement_unit".
		if i == 0 && strings.EqualFold(name, "name") {
			continue
		}
		entries = append(entries, service.IngredientImport{
			Name: name,
			Unit: unit,
		})
	}
	return entries, nil
}
