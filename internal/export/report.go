package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tcoles/arenaforge/internal/engine"
	"github.com/tcoles/arenaforge/internal/model"
)

// ExportReport writes an XLSX workbook with one Items sheet listing every
// footprint across all arenas and one Overlaps sheet with the per-pair
// separation vectors.
func ExportReport(path string, config *model.ArenaConfig) error {
	if config == nil || len(config.Arenas) == 0 {
		return fmt.Errorf("no arenas to report on")
	}

	f := excelize.NewFile()
	defer f.Close()

	itemsSheet := "Items"
	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	itemHeaders := []any{"Arena", "Name", "Type", "X", "Y", "Z", "Length", "Width", "Height", "Rotation"}
	if err := writeRow(f, itemsSheet, 1, itemHeaders); err != nil {
		return err
	}

	row := 2
	for arenaIdx, arena := range config.Arenas {
		for _, item := range arena.Items {
			cells := []any{
				arenaIdx, item.Name, item.Type,
				item.X, item.Y, item.Z,
				item.Length, item.Width, item.Height,
				item.Rotation,
			}
			if err := writeRow(f, itemsSheet, row, cells); err != nil {
				return err
			}
			row++
		}
	}

	overlapsSheet := "Overlaps"
	if _, err := f.NewSheet(overlapsSheet); err != nil {
		return fmt.Errorf("failed to add overlaps sheet: %w", err)
	}

	overlapHeaders := []any{"Arena", "Item A", "Item B", "Move X", "Move Z", "Move Y"}
	if err := writeRow(f, overlapsSheet, 1, overlapHeaders); err != nil {
		return err
	}

	row = 2
	for arenaIdx, arena := range config.Arenas {
		for _, pair := range engine.FindOverlaps(arena.Items) {
			cells := []any{
				arenaIdx, pair.NameA, pair.NameB,
				pair.MTV.X(), pair.MTV.Y(), pair.VerticalOverlap,
			}
			if err := writeRow(f, overlapsSheet, row, cells); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, cell := range cells {
		ref, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to build cell reference: %w", err)
		}
		if err := f.SetCellValue(sheet, ref, cell); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", ref, err)
		}
	}
	return nil
}
