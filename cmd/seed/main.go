package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ikkim/storefront/config"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/internal/importer"
	"github.com/ikkim/storefront/pkg/logger"
)

func main() {
	batchSize := flag.Int("batch", 500, "rows per insert batch")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: go run cmd/seed/main.go [-batch N] [-yes] <xlsx_file_path>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	filePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	catalog, err := importer.ReadFile(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Collections to import: %d\n", len(catalog.Collections))
	fmt.Printf("Products to import: %d\n", len(catalog.Products))
	fmt.Printf("Rows skipped while parsing: %d\n", len(catalog.Problems))

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	result, err := catalog.Save(db.GetDB(), *batchSize)
	if err != nil {
		log.Fatal("Failed to import catalog:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  Collections created: %d\n", result.CollectionsCreated)
	fmt.Printf("  Products created: %d\n", result.ProductsCreated)
	if len(result.Problems) > 0 {
		fmt.Printf("  Skipped rows: %d\n", len(result.Problems))
		for _, problem := range result.Problems {
			fmt.Printf("    %s\n", problem)
		}
	}
}
