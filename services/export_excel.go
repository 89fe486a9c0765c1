package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const excelSheetName = "Compra"

// GenerateExcel creates an Excel workbook for one compra and returns the file
// contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, excelSheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	sheet := excelSheetName

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 40, 12, 12, 18, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	totalLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total label style: %w", err)
	}

	totalValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create total value style: %w", err)
	}

	// ── Header Rows (1-4) ───────────────────────────────────────────────

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(data.Title()))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)

	info := []string{
		"Fecha: " + data.FechaCompra,
		"Forma de pago: " + data.FormaPago,
	}
	if data.CUIT != "" {
		info = append(info, "CUIT: "+data.CUIT)
	}
	if data.Empleado != "" {
		info = append(info, "Registrada por: "+data.Empleado)
	}
	row := 2
	for _, line := range info {
		r := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheet, "A"+r, lastCol+r); err != nil {
			return nil, fmt.Errorf("merge info row %d: %w", row, err)
		}
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(line))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, subtitleStyle)
		row++
	}

	// ── Column Headers ──────────────────────────────────────────────────

	row++
	headerRow := fmt.Sprintf("%d", row)
	headers := []string{"#", "Insumo", "Unidad", "Cantidad", "Precio unitario", "Subtotal"}
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+headerRow, h)
	}
	f.SetCellStyle(sheet, "A"+headerRow, lastCol+headerRow, headerStyle)
	row++

	// ── Detail Rows ─────────────────────────────────────────────────────

	for _, d := range data.Rows {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, d.Index)
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(d.Insumo))
		f.SetCellValue(sheet, "C"+r, sanitizeExcelCell(d.Unidad))
		f.SetCellValue(sheet, "D"+r, d.Cantidad.InexactFloat64())
		f.SetCellValue(sheet, "E"+r, FormatARS(d.Precio))
		f.SetCellValue(sheet, "F"+r, FormatARS(d.Subtotal))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, rowStyle)
		row++
	}

	// ── Total ───────────────────────────────────────────────────────────

	row++
	totalRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheet, "E"+totalRow, "Total:")
	f.SetCellStyle(sheet, "E"+totalRow, "E"+totalRow, totalLabelStyle)
	f.SetCellValue(sheet, "F"+totalRow, FormatARS(data.Total))
	f.SetCellStyle(sheet, "F"+totalRow, "F"+totalRow, totalValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
