package entity

import "github.com/shopspring/decimal"

// SaleRecord línea de venta del export diario del punto de venta.
// Solo se almacenan registros con SalesDay y Barcode no vacíos.
type SaleRecord struct {
	ID            int64
	SalesDay      string // YYYY-MM-DD (ver Normalizer)
	Layer1Code    string
	Barcode       string
	ItemName      string
	Qty           decimal.Decimal
	AmountExclTax decimal.Decimal
	TransactionID string
}

// SalesDaySummary cantidad de registros almacenados para un día de venta.
type SalesDaySummary struct {
	SalesDay string
	Records  int
}
