// Package excel implementa la exportación del reporte de inventario a una
// hoja de cálculo descargable.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Mantenix-api/internal/application/analytics"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

const sheetName = "Inventario"

var _ analytics.StockReportExporter = (*StockReportExporter)(nil)

// StockReportExporter implementa analytics.StockReportExporter usando
// Excelize. Genera un libro con una hoja: cabecera, una fila por repuesto y
// la valuación total al pie.
type StockReportExporter struct {
	printer *message.Printer
}

// NewStockReportExporter construye el exportador.
func NewStockReportExporter() *StockReportExporter {
	return &StockReportExporter{printer: message.NewPrinter(language.Spanish)}
}

// StockReport renderiza el reporte y devuelve los bytes del archivo .xlsx.
func (e *StockReportExporter) StockReport(rows []repository.StockReportRow, valuation decimal.Decimal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: eliminar hoja por defecto: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}
	lowStockStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de stock bajo: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de total: %w", err)
	}

	header := []any{"SKU", "Nombre", "Ubicación", "Cantidad", "Mínimo", "Costo Unit.", "Valor de Stock"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: aplicar estilo: %w", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.SKU,
			row.Name,
			row.Location,
			row.QuantityOnHand,
			row.MinStockLevel,
			row.UnitCost.InexactFloat64(),
			row.StockValue.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %s: %w", row.SKU, err)
		}
		if row.QuantityOnHand <= row.MinStockLevel {
			start := fmt.Sprintf("A%d", i+2)
			end := fmt.Sprintf("G%d", i+2)
			if err := f.SetCellStyle(sheetName, start, end, lowStockStyle); err != nil {
				return nil, fmt.Errorf("excel: resaltar stock bajo: %w", err)
			}
		}
	}

	totalRow := len(rows) + 3
	labelCell := fmt.Sprintf("A%d", totalRow)
	valueCell := fmt.Sprintf("G%d", totalRow)
	if err := f.SetCellValue(sheetName, labelCell, "Valuación total del inventario"); err != nil {
		return nil, fmt.Errorf("excel: etiqueta de total: %w", err)
	}
	if err := f.SetCellValue(sheetName, valueCell, e.printer.Sprintf("$%.2f", valuation.InexactFloat64())); err != nil {
		return nil, fmt.Errorf("excel: valor de total: %w", err)
	}
	if err := f.SetCellStyle(sheetName, labelCell, valueCell, totalStyle); err != nil {
		return nil, fmt.Errorf("excel: estilo de total: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "C", 24); err != nil {
		return nil, fmt.Errorf("excel: ancho de columnas: %w", err)
	}
	if err := f.SetColWidth(sheetName, "D", "G", 14); err != nil {
		return nil, fmt.Errorf("excel: ancho de columnas: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
