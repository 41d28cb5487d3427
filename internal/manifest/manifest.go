// Package manifest imports cargo lists from JSON manifests, CSV files, and
// Excel workbooks. The JSON path is deliberately lenient so manifests can
// be lifted straight out of chat transcripts or other surrounding prose.
package manifest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// Item is one row of the persisted JSON manifest. All numbers are
// centimetres and kilograms.
type Item struct {
	Name        string  `json:"name"`
	Qty         int     `json:"qty"`
	L           int     `json:"l"`
	W           int     `json:"w"`
	H           int     `json:"h"`
	Weight      float64 `json:"weight"`
	Unstackable bool    `json:"unstackable"`
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Specs    []model.CargoSpec
	Errors   []string
	Warnings []string
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractItems pulls a manifest array out of free-form text. Fenced code
// blocks are preferred, a raw top-level array is accepted next, and a
// first-to-last bracket scan is the last resort.
func ExtractItems(text string) ([]Item, error) {
	for _, m := range fencedBlock.FindAllStringSubmatch(text, -1) {
		if items, ok := tryParseItems(m[1]); ok {
			return items, nil
		}
	}

	if items, ok := tryParseItems(text); ok {
		return items, nil
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		if items, ok := tryParseItems(text[start : end+1]); ok {
			return items, nil
		}
	}

	return nil, fmt.Errorf("no cargo manifest array found in input")
}

func tryParseItems(s string) ([]Item, bool) {
	var items []Item
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &items); err != nil {
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// ItemsToSpecs validates manifest rows into cargo specs. Bad rows are
// reported and skipped; a missing quantity is lenient-defaulted to 1.
func ItemsToSpecs(items []Item) ImportResult {
	result := ImportResult{}
	for i, it := range items {
		rowLabel := fmt.Sprintf("Item %d", i+1)
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = fmt.Sprintf("Cargo %d", len(result.Specs)+1)
		}
		if it.L <= 0 || it.W <= 0 || it.H <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: dimensions must be positive", rowLabel))
			continue
		}
		if it.Weight < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: weight must not be negative", rowLabel))
			continue
		}
		qty := it.Qty
		if qty < 1 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: missing quantity, defaulting to 1", rowLabel))
			qty = 1
		}
		spec := model.NewCargoSpec(name, it.L, it.W, it.H, it.Weight, qty)
		spec.Unstackable = it.Unstackable
		result.Specs = append(result.Specs, spec)
	}
	return result
}

// ImportText extracts and validates a manifest embedded in free-form text.
func ImportText(text string) ImportResult {
	items, err := ExtractItems(text)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return ItemsToSpecs(items)
}

// ImportJSON imports a manifest file.
func ImportJSON(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return ImportText(string(data))
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name        int
	Length      int
	Width       int
	Height      int
	Quantity    int
	Weight      int
	Unstackable int
}

// headerAliases maps canonical column names to accepted aliases (lowercase).
var headerAliases = map[string][]string{
	"name":        {"name", "item", "cargo", "label", "description", "desc"},
	"length":      {"length", "len", "l", "depth"},
	"width":       {"width", "w"},
	"height":      {"height", "h"},
	"quantity":    {"quantity", "qty", "count", "num", "pcs", "pieces"},
	"weight":      {"weight", "kg", "mass", "wt"},
	"unstackable": {"unstackable", "no-stack", "nostack", "top only", "top-only", "fragile"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe; the one producing the most consistent
// multi-column rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping, plus
// whether a header was recognised. Without a header the mapping falls back
// to positional order: name, length, width, height, quantity, weight,
// unstackable.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Length: -1, Width: -1, Height: -1, Quantity: -1, Weight: -1, Unstackable: -1}

	set := func(role string, i int) {
		switch role {
		case "name":
			if mapping.Name == -1 {
				mapping.Name = i
			}
		case "length":
			if mapping.Length == -1 {
				mapping.Length = i
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = i
			}
		case "height":
			if mapping.Height == -1 {
				mapping.Height = i
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = i
			}
		case "weight":
			if mapping.Weight == -1 {
				mapping.Weight = i
			}
		case "unstackable":
			if mapping.Unstackable == -1 {
				mapping.Unstackable = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					set(role, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Length: 1, Width: 2, Height: 3, Quantity: 4, Weight: 5, Unstackable: 6}, false
	}
	return mapping, true
}

// getCell safely retrieves a trimmed cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseUnstackable(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x":
		return true, true
	case "", "no", "n", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// parseRow extracts a manifest item from a row using the given mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (Item, string, string) {
	item := Item{Name: getCell(row, mapping.Name)}
	if item.Name == "" {
		item.Name = fmt.Sprintf("Cargo %d", itemCount+1)
	}

	dims := []struct {
		label string
		idx   int
		dst   *int
	}{
		{"length", mapping.Length, &item.L},
		{"width", mapping.Width, &item.W},
		{"height", mapping.Height, &item.H},
	}
	for _, d := range dims {
		s := getCell(row, d.idx)
		if s == "" {
			return Item{}, fmt.Sprintf("%s: Missing %s value", rowLabel, d.label), ""
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return Item{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, d.label, s), ""
		}
		if v <= 0 {
			return Item{}, fmt.Sprintf("%s: %s must be positive", rowLabel, d.label), ""
		}
		*d.dst = v
	}

	var warning string

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		item.Qty = 1
		warning = fmt.Sprintf("%s: Missing quantity, defaulting to 1", rowLabel)
	} else {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			return Item{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		item.Qty = qty
	}

	if s := getCell(row, mapping.Weight); s != "" {
		w, err := strconv.ParseFloat(s, 64)
		if err != nil || w < 0 {
			return Item{}, fmt.Sprintf("%s: Invalid weight '%s'", rowLabel, s), ""
		}
		item.Weight = w
	}

	if s := getCell(row, mapping.Unstackable); s != "" {
		u, ok := parseUnstackable(s)
		if ok {
			item.Unstackable = u
		} else if warning == "" {
			warning = fmt.Sprintf("%s: Unknown unstackable flag '%s', defaulting to stackable", rowLabel, s)
		}
	}

	return item, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a cargo list from a CSV file with automatic delimiter
// detection and header-alias column mapping.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	return importFromRows(records, "Line", warnings)
}

// ImportExcel imports a cargo list from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	if len(rows) == 0 {
		return ImportResult{Errors: []string{"Sheet is empty"}}
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared tabular import path: detect the header, map
// columns, parse each row, and collect per-row errors without aborting.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			// Unrecognised header: skip it but keep positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	var items []Item
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, len(items))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		items = append(items, item)
	}

	specs := ItemsToSpecs(items)
	result.Specs = specs.Specs
	result.Errors = append(result.Errors, specs.Errors...)
	result.Warnings = append(result.Warnings, specs.Warnings...)
	return result
}

// ImportFile dispatches on the file extension: .json, .csv, .xlsx/.xls.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ImportCSV(path)
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return ImportExcel(path)
	default:
		return ImportJSON(path)
	}
}
