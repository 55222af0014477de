package promo

import "github.com/jhoicas/promo-tracker/internal/domain/entity"

// UnnamedItem nombre que recibe un producto del catálogo sin nombre.
const UnnamedItem = "Không tên"

// ExtractCatalog recorre las filas posteriores al encabezado y arma el catálogo.
// Se omiten las filas sin barcode; las filas sin nombre reciben UnnamedItem.
// Si no hay encabezado reconocible el resultado es vacío (no es error): el
// llamador debe tratar un catálogo vacío como importación fallida.
func ExtractCatalog(grid Grid, barcodeKeywords, nameKeywords []string) []entity.EventProduct {
	header, ok := ResolveHeader(grid, barcodeKeywords, nameKeywords)
	if !ok {
		return []entity.EventProduct{}
	}

	products := make([]entity.EventProduct, 0, len(grid)-header.Row-1)
	for r := header.Row + 1; r < len(grid); r++ {
		barcode := CleanValue(grid.Cell(r, header.BarcodeCol))
		if barcode == "" {
			continue
		}
		name := CleanValue(grid.Cell(r, header.NameCol))
		if name == "" {
			name = UnnamedItem
		}
		products = append(products, entity.EventProduct{Barcode: barcode, ItemName: name})
	}
	return products
}
