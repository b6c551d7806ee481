package menu

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"resto-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Required header columns for a menu CSV.
var requiredColumns = []string{"item_name", "category", "price", "gst"}

// RowError records why a single import row was rejected. Rejected rows are
// skipped; they never abort the import.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportSummary is the per-row outcome of a bulk menu import.
type ImportSummary struct {
	Accepted int        `json:"accepted"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Importer parses tabular menu files into menu items.
type Importer struct {
	logger zerolog.Logger
}

// NewImporter creates a new menu CSV importer.
func NewImporter(logger zerolog.Logger) *Importer {
	return &Importer{
		logger: logger.With().Str("component", "menu-importer").Logger(),
	}
}

// ParseCSV reads a menu CSV with header columns item_name, category, price
// and gst. Rows that fail type coercion or miss fields are reported as
// RowErrors and skipped; the rest become menu items in file order. A
// missing or incomplete header fails the whole import, since no row could
// ever be accepted.
func (im *Importer) ParseCSV(r io.Reader) ([]model.MenuItem, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("menu CSV must contain columns: %s", strings.Join(requiredColumns, ", "))
		}
	}

	var items []model.MenuItem
	var rowErrs []RowError
	lineNum := 1 // header consumed

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed CSV rows (bad quoting etc.) are skipped like any
			// other rejected row.
			rowErrs = append(rowErrs, RowError{Line: lineNum, Reason: err.Error()})
			continue
		}

		item, reason := im.coerceRow(record, cols)
		if reason != "" {
			rowErrs = append(rowErrs, RowError{Line: lineNum, Reason: reason})
			continue
		}
		items = append(items, item)
	}

	im.logger.Info().
		Int("accepted", len(items)).
		Int("skipped", len(rowErrs)).
		Msg("menu CSV parsed")

	return items, rowErrs, nil
}

// coerceRow turns one CSV record into a menu item, or returns the reason
// it cannot.
func (im *Importer) coerceRow(record []string, cols map[string]int) (model.MenuItem, string) {
	field := func(name string) (string, bool) {
		i := cols[name]
		if i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}

	name, ok := field("item_name")
	if !ok || name == "" {
		return model.MenuItem{}, "missing item_name"
	}

	category, ok := field("category")
	if !ok || category == "" {
		return model.MenuItem{}, "missing category"
	}

	priceStr, ok := field("price")
	if !ok || priceStr == "" {
		return model.MenuItem{}, "missing price"
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return model.MenuItem{}, fmt.Sprintf("invalid price %q", priceStr)
	}
	if price.IsNegative() {
		return model.MenuItem{}, fmt.Sprintf("negative price %q", priceStr)
	}

	gstStr, ok := field("gst")
	if !ok || gstStr == "" {
		return model.MenuItem{}, "missing gst"
	}
	gst, err := decimal.NewFromString(gstStr)
	if err != nil {
		return model.MenuItem{}, fmt.Sprintf("invalid gst %q", gstStr)
	}
	if gst.IsNegative() {
		return model.MenuItem{}, fmt.Sprintf("negative gst %q", gstStr)
	}

	return model.MenuItem{
		Name:     name,
		Category: category,
		Price:    price,
		TaxRate:  gst,
	}, ""
}
