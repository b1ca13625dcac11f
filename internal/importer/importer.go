// Package importer loads collections and products from an XLSX workbook.
//
// The workbook has a "Collections" sheet (title) and a "Products" sheet
// (title, slug, description, unit_price, inventory, collection). The first
// row of each sheet is a header. Products reference collections by title.
package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	CollectionsSheet = "Collections"
	ProductsSheet    = "Products"

	maxTitleLength = 255
)

var (
	maxUnitPrice = decimal.RequireFromString("9999.99")

	slugInvalidChars = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// RowProblem describes a skipped row. Row is 1-based as shown in spreadsheet tools.
type RowProblem struct {
	Sheet  string
	Row    int
	Reason string
}

func (p RowProblem) String() string {
	return fmt.Sprintf("%s row %d: %s", p.Sheet, p.Row, p.Reason)
}

// ProductRow is a parsed product waiting for its collection to be resolved
type ProductRow struct {
	Row        int
	Product    model.Product
	Collection string
}

// Catalog is the parsed content of a workbook
type Catalog struct {
	Collections []model.Collection
	Products    []ProductRow
	Problems    []RowProblem
}

// Result summarizes what Save wrote
type Result struct {
	CollectionsCreated int
	ProductsCreated    int
	Problems           []RowProblem
}

// ReadFile opens and parses the workbook at path
func ReadFile(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses both sheets. Invalid rows are recorded as problems, not errors.
func Read(f *excelize.File) (*Catalog, error) {
	catalog := &Catalog{}

	collectionRows, err := sheetRows(f, CollectionsSheet)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for i, row := range collectionRows {
		rowNum := i + 2
		title := cell(row, 0)
		switch {
		case title == "":
			catalog.problem(CollectionsSheet, rowNum, "title is required")
		case len(title) > maxTitleLength:
			catalog.problem(CollectionsSheet, rowNum, "title is longer than 255 characters")
		case seen[title]:
			catalog.problem(CollectionsSheet, rowNum, fmt.Sprintf("duplicate collection %q", title))
		default:
			seen[title] = true
			catalog.Collections = append(catalog.Collections, model.Collection{Title: title})
		}
	}

	productRows, err := sheetRows(f, ProductsSheet)
	if err != nil {
		return nil, err
	}
	for i, row := range productRows {
		rowNum := i + 2
		product, reason := parseProduct(row)
		if reason != "" {
			catalog.problem(ProductsSheet, rowNum, reason)
			continue
		}
		catalog.Products = append(catalog.Products, ProductRow{
			Row:        rowNum,
			Product:    product,
			Collection: cell(row, 5),
		})
	}

	logger.Info("Workbook parsed", map[string]interface{}{
		"collections": len(catalog.Collections),
		"products":    len(catalog.Products),
		"skipped":     len(catalog.Problems),
	})
	return catalog, nil
}

func (c *Catalog) problem(sheet string, row int, reason string) {
	c.Problems = append(c.Problems, RowProblem{Sheet: sheet, Row: row, Reason: reason})
}

// Save inserts the catalog in one transaction. Collections whose title already
// exists are reused; products naming an unknown collection are skipped.
func (c *Catalog) Save(db *gorm.DB, batchSize int) (*Result, error) {
	result := &Result{Problems: append([]RowProblem(nil), c.Problems...)}

	err := db.Transaction(func(tx *gorm.DB) error {
		ids, err := existingCollectionIDs(tx)
		if err != nil {
			return err
		}

		var newCollections []model.Collection
		for _, collection := range c.Collections {
			if _, ok := ids[collection.Title]; !ok {
				newCollections = append(newCollections, collection)
			}
		}
		if len(newCollections) > 0 {
			if err := tx.CreateInBatches(&newCollections, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert collections: %w", err)
			}
			for _, collection := range newCollections {
				ids[collection.Title] = collection.ID
			}
		}
		result.CollectionsCreated = len(newCollections)

		var products []model.Product
		for _, row := range c.Products {
			collectionID, ok := ids[row.Collection]
			if !ok {
				result.Problems = append(result.Problems, RowProblem{
					Sheet:  ProductsSheet,
					Row:    row.Row,
					Reason: fmt.Sprintf("unknown collection %q", row.Collection),
				})
				continue
			}
			product := row.Product
			product.CollectionID = collectionID
			products = append(products, product)
		}
		if len(products) > 0 {
			if err := tx.CreateInBatches(&products, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert products: %w", err)
			}
		}
		result.ProductsCreated = len(products)
		return nil
	})
	if err != nil {
		logger.Error("Catalog import failed", err)
		return nil, err
	}

	logger.Info("Catalog import completed", map[string]interface{}{
		"collections_created": result.CollectionsCreated,
		"products_created":    result.ProductsCreated,
		"skipped":             len(result.Problems),
	})
	return result, nil
}

func existingCollectionIDs(tx *gorm.DB) (map[string]uint, error) {
	var existing []model.Collection
	if err := tx.Select("id", "title").Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}
	ids := make(map[string]uint, len(existing))
	for _, collection := range existing {
		ids[collection.Title] = collection.ID
	}
	return ids, nil
}

func parseProduct(row []string) (model.Product, string) {
	title := cell(row, 0)
	if title == "" {
		return model.Product{}, "title is required"
	}
	if len(title) > maxTitleLength {
		return model.Product{}, "title is longer than 255 characters"
	}

	slug := cell(row, 1)
	if slug == "" {
		slug = GenerateSlug(title)
	}
	if slug == "" {
		return model.Product{}, "slug is required"
	}

	price, err := decimal.NewFromString(cell(row, 3))
	if err != nil {
		return model.Product{}, fmt.Sprintf("invalid unit_price %q", cell(row, 3))
	}
	if !price.IsPositive() || price.GreaterThan(maxUnitPrice) {
		return model.Product{}, "unit_price must be greater than 0 and at most 9999.99"
	}

	inventory, err := strconv.Atoi(cell(row, 4))
	if err != nil || inventory < 0 {
		return model.Product{}, fmt.Sprintf("invalid inventory %q", cell(row, 4))
	}

	if cell(row, 5) == "" {
		return model.Product{}, "collection is required"
	}

	return model.Product{
		Title:       title,
		Slug:        slug,
		Description: cell(row, 2),
		UnitPrice:   price.Round(2),
		Inventory:   inventory,
	}, ""
}

// GenerateSlug lowercases title and joins its words with hyphens
func GenerateSlug(title string) string {
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(title), "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// sheetRows returns the data rows of sheet, without the header
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
