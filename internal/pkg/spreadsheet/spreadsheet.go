package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TableOptions controls how WriteTable styles a table.
type TableOptions struct {
	// HighlightColumns are zero-based column indexes shaded on every row, e.g. weekends.
	HighlightColumns []int
	// BoldLastRow styles the final row like the header, for totals.
	BoldLastRow bool
	// ColumnWidth applies to every column when non-zero.
	ColumnWidth float64
}

// WriteTable renders a rectangular table into a single-sheet workbook and
// returns the xlsx bytes. The first row is treated as the header.
func WriteTable(sheet string, table [][]any, opts TableOptions) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	highlightStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create highlight style: %w", err)
	}

	width := 0
	for r, row := range table {
		width = max(width, len(row))
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}
	if len(table) == 0 || width == 0 {
		return writeBuffer(f)
	}

	for _, col := range opts.HighlightColumns {
		if col < 0 || col >= width {
			continue
		}
		top, _ := excelize.CoordinatesToCellName(col+1, 2)
		bottom, _ := excelize.CoordinatesToCellName(col+1, len(table))
		if len(table) > 1 {
			if err := f.SetCellStyle(sheet, top, bottom, highlightStyle); err != nil {
				return nil, err
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if opts.BoldLastRow && len(table) > 1 {
		last := len(table)
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", last), fmt.Sprintf("%s%d", lastCol, last), headerStyle); err != nil {
			return nil, err
		}
	}
	if opts.ColumnWidth > 0 {
		if err := f.SetColWidth(sheet, "A", lastCol, opts.ColumnWidth); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	return writeBuffer(f)
}

func writeBuffer(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadSheet returns the cell text of a sheet as rows. An empty sheet name
// selects the first sheet. Trailing empty cells of a row are not returned.
func ReadSheet(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
