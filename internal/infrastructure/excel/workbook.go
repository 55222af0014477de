// Package excel lee catálogos de eventos desde libros .xlsx.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/promo"
)

const source = "catalog"

// ReadFirstSheet abre el libro y devuelve la primera hoja como Grid.
// Las celdas se leen en crudo (sin formato de número). Las celdas numéricas
// llegan como decimal.Decimal y las de texto como string, así un barcode
// guardado como número ("8936123456789.0", "8.936123456789E+12") pasa por la
// rama numérica de CleanValue. Libro ilegible o sin filas → FileFormatError.
func ReadFirstSheet(data []byte) (promo.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewFileFormatError(source, "libro Excel ilegible", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewFileFormatError(source, "el libro no tiene hojas", nil)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewFileFormatError(source, fmt.Sprintf("leer hoja %q", sheets[0]), err)
	}
	if len(rows) == 0 {
		return nil, domain.NewFileFormatError(source, fmt.Sprintf("la hoja %q está vacía", sheets[0]), nil)
	}

	grid := make(promo.Grid, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = typedCell(f, sheets[0], j+1, i+1, v)
		}
		grid[i] = cells
	}
	return grid, nil
}

// typedCell devuelve el valor crudo como decimal cuando la celda es numérica.
// Sin tipo explícito (t="" en el XML) la celda es número para Excel.
func typedCell(f *excelize.File, sheet string, col, row int, raw string) any {
	if raw == "" {
		return raw
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if d, err := decimal.NewFromString(raw); err == nil {
			return d
		}
	}
	return raw
}

// ExtractCatalog lee la primera hoja y extrae el catálogo con las palabras clave
// por defecto. Un catálogo sin productos es un error de formato: sin encabezado
// reconocible no hay nada que cruzar con las ventas.
func ExtractCatalog(data []byte) ([]entity.EventProduct, error) {
	grid, err := ReadFirstSheet(data)
	if err != nil {
		return nil, err
	}
	products := promo.ExtractCatalog(grid, promo.DefaultBarcodeKeywords, promo.DefaultNameKeywords)
	if len(products) == 0 {
		return nil, domain.NewFileFormatError(source, "no se encontró encabezado de barcode y nombre, o no hay productos", nil)
	}
	return products, nil
}

// CatalogReader adaptador del lector de catálogos para los casos de uso.
type CatalogReader struct{}

// Extract implementa usecase.CatalogSource.
func (CatalogReader) Extract(data []byte) ([]entity.EventProduct, error) {
	return ExtractCatalog(data)
}
