package entity

import "time"

// EventProduct identifica un SKU del catálogo promocional.
// Barcode es la llave del cruce con las ventas y se trata como texto opaco
// (ceros a la izquierda y secuencias largas de dígitos son comunes).
type EventProduct struct {
	Barcode  string
	ItemName string
}

// Event campaña promocional con catálogo fijo y ventana de fechas.
// StartDate y EndDate son fechas canónicas YYYY-MM-DD con StartDate <= EndDate.
// Los eventos no se modifican: se crean por importación y se eliminan completos.
type Event struct {
	ID        string
	Name      string
	StartDate string
	EndDate   string
	Products  []EventProduct
	CreatedAt time.Time
}

// ProductCount número de filas del catálogo (puede incluir barcodes repetidos).
func (e *Event) ProductCount() int {
	return len(e.Products)
}
