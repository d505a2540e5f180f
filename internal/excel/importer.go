package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/synapz/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	TitleColumn    string // Column with the fact title
	TextColumn     string // Column with the fact text
	CategoryColumn string // Column with the category
	SourceColumn   string // Column with the source
	ImageColumn    string // Column with the image URL
	KeywordsColumn string // Column with comma or semicolon separated keywords
	SheetName      string // Name of the sheet to import, first sheet when empty or missing
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TitleColumn:    "A",
		TextColumn:     "B",
		CategoryColumn: "C",
		SourceColumn:   "D",
		ImageColumn:    "E",
		KeywordsColumn: "F",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the facts read from a spreadsheet
type ImportResult struct {
	TotalProcessed int
	Skipped        int
	Facts          []models.FactInput
	Errors         []string
}

// ImportFile reads facts from an Excel or CSV file
func ImportFile(path string, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()
	return Import(file, path, config)
}

// Import reads facts from r. The format is chosen by the extension of name.
func Import(r io.Reader, name string, config ImportConfig) (*ImportResult, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return importFromCSV(r, config)
	case ".xlsx", ".xlsm":
		return importFromExcel(r, config)
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .xlsx or .csv", filepath.Ext(name))
	}
}

func importFromExcel(r io.Reader, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" || !hasSheet(f, sheet) {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return processRows(rows, config), nil
}

func hasSheet(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

func importFromCSV(r io.Reader, config ImportConfig) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %v", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %v", err)
	}
	return processRows(rows, config), nil
}

// processRows turns spreadsheet rows into facts. A header row naming the
// columns (title, text, category, source, image_url, keywords) overrides the
// configured column letters.
func processRows(rows [][]string, config ImportConfig) *ImportResult {
	cols := columnsFromConfig(config)
	start := config.StartRow
	if start < 1 {
		start = 1
	}
	if start > 1 && len(rows) > 0 {
		if header, ok := columnsFromHeader(rows[0]); ok {
			cols = header
		}
	}

	result := &ImportResult{Facts: []models.FactInput{}, Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < start-1 {
			continue
		}
		if isBlank(row) {
			continue
		}
		result.TotalProcessed++

		fact, err := processRow(row, cols)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Facts = append(result.Facts, fact)
	}
	return result
}

type columns struct {
	title, text, category, source, image, keywords int
}

func columnsFromConfig(config ImportConfig) columns {
	return columns{
		title:    columnToIndex(config.TitleColumn),
		text:     columnToIndex(config.TextColumn),
		category: columnToIndex(config.CategoryColumn),
		source:   columnToIndex(config.SourceColumn),
		image:    columnToIndex(config.ImageColumn),
		keywords: columnToIndex(config.KeywordsColumn),
	}
}

func columnsFromHeader(row []string) (columns, bool) {
	c := columns{-1, -1, -1, -1, -1, -1}
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "title":
			c.title = i
		case "text", "fact":
			c.text = i
		case "category":
			c.category = i
		case "source":
			c.source = i
		case "image", "image_url", "imageurl":
			c.image = i
		case "keywords", "tags":
			c.keywords = i
		}
	}
	return c, c.title >= 0 && c.text >= 0
}

// processRow processes a single row
func processRow(row []string, cols columns) (models.FactInput, error) {
	fact := models.FactInput{
		Title:    cell(row, cols.title),
		Text:     cell(row, cols.text),
		Category: cell(row, cols.category),
		Source:   cell(row, cols.source),
		ImageURL: cell(row, cols.image),
		Keywords: splitKeywords(cell(row, cols.keywords)),
	}
	if fact.Title == "" {
		return fact, fmt.Errorf("title cannot be empty")
	}
	if fact.Text == "" {
		return fact, fmt.Errorf("text cannot be empty")
	}
	return fact, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper function to convert Excel column letter to index, -1 when unset
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
