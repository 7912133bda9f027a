// Package importer reads arena items from external file formats: CSV and
// Excel item lists with flexible column mapping, and DXF floor plans whose
// closed shapes become wall footprints.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tcoles/arenaforge/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []*model.Footprint
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Type     int
	Name     int
	X        int
	Y        int
	Z        int
	Length   int
	Width    int
	Height   int
	Rotation int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"type":     {"type", "item", "item type", "kind", "object"},
	"name":     {"name", "label", "id"},
	"x":        {"x", "pos x", "position x"},
	"y":        {"y", "pos y", "position y", "elevation"},
	"z":        {"z", "pos z", "position z"},
	"length":   {"length", "len", "size x"},
	"width":    {"width", "size z"},
	"height":   {"height", "size y"},
	"rotation": {"rotation", "rot", "angle", "yaw"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV
// delimiter. It tries comma, semicolon, tab, and pipe; the delimiter producing
// the most consistent multi-column split across lines wins.
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

// DetectColumns examines a header row and returns a ColumnMapping. Matching is
// case-insensitive against the known aliases for each role. Returns the mapping
// and true if a header was detected, or a positional mapping and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Type: -1, Name: -1,
		X: -1, Y: -1, Z: -1,
		Length: -1, Width: -1, Height: -1,
		Rotation: -1,
	}

	assign := func(role string, i int) {
		switch role {
		case "type":
			if mapping.Type == -1 {
				mapping.Type = i
			}
		case "name":
			if mapping.Name == -1 {
				mapping.Name = i
			}
		case "x":
			if mapping.X == -1 {
				mapping.X = i
			}
		case "y":
			if mapping.Y == -1 {
				mapping.Y = i
			}
		case "z":
			if mapping.Z == -1 {
				mapping.Z = i
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
		case "rotation":
			if mapping.Rotation == -1 {
				mapping.Rotation = i
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
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: Type, X, Y, Z, Length, Width, Height, Rotation
		return ColumnMapping{
			Type: 0, Name: -1,
			X: 1, Y: 2, Z: 3,
			Length: 4, Width: 5, Height: 6,
			Rotation: 7,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFloatCell parses an optional numeric cell, falling back to def when the
// cell is empty. The bool reports whether the value was valid.
func parseFloatCell(row []string, idx int, def float64) (float64, string, bool) {
	s := getCell(row, idx)
	if s == "" {
		return def, "", true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, s, false
	}
	return v, "", true
}

// parseRow extracts a Footprint from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, typeCounts map[string]int) (*model.Footprint, string, string) {
	typeName := getCell(row, mapping.Type)
	if typeName == "" {
		return nil, fmt.Sprintf("%s: Missing item type", rowLabel), ""
	}

	def, err := model.DefaultItemDefinition(typeName)
	if err != nil {
		return nil, fmt.Sprintf("%s: Unknown item type '%s'", rowLabel, typeName), ""
	}

	x, raw, ok := parseFloatCell(row, mapping.X, 0)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, raw), ""
	}
	y, raw, ok := parseFloatCell(row, mapping.Y, 0)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid y '%s'", rowLabel, raw), ""
	}
	z, raw, ok := parseFloatCell(row, mapping.Z, 0)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid z '%s'", rowLabel, raw), ""
	}

	length, raw, ok := parseFloatCell(row, mapping.Length, def.Size.X)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, raw), ""
	}
	width, raw, ok := parseFloatCell(row, mapping.Width, def.Size.Z)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, raw), ""
	}
	height, raw, ok := parseFloatCell(row, mapping.Height, def.Size.Y)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, raw), ""
	}
	if length < 0 || width < 0 || height < 0 {
		return nil, fmt.Sprintf("%s: Sizes must not be negative", rowLabel), ""
	}

	rotation, raw, ok := parseFloatCell(row, mapping.Rotation, 0)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid rotation '%s'", rowLabel, raw), ""
	}

	token := model.TypeToken(typeName)
	var warning string
	if token != typeName {
		warning = fmt.Sprintf("%s: Stripped instance suffix from type '%s'", rowLabel, typeName)
	}
	name := getCell(row, mapping.Name)
	if name == "" {
		name = model.InstanceName(token, typeCounts[token])
	}
	typeCounts[token]++

	item := model.NewFootprint(token, name, x, y, z, length, width, height, rotation)
	color := def.Color
	item.Color = &model.RGB{R: color.R, G: color.G, B: color.B}
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

// ImportCSV imports arena items from a CSV file. It automatically detects the
// delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importFromReader(bytes.NewReader(data), delimiter, "Line", result.Warnings)
}

// ImportCSVFromReader imports arena items from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importFromReader(reader, delimiter, "Line", nil)
}

func importFromReader(reader io.Reader, delimiter rune, rowPrefix string, warnings []string) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}, Warnings: warnings}
	}

	return importFromRows(records, rowPrefix, warnings)
}

// ImportExcel imports arena items from an Excel (.xlsx) file. Reads the first
// sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Type == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Type")
			return result
		}
	} else if len(rows[0]) >= 2 {
		// No recognized header: if the second column is not numeric this is
		// probably an unrecognized header row, skip it but keep positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	typeCounts := make(map[string]int)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, typeCounts)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, item)
	}

	return result
}
