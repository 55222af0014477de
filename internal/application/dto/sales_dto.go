package dto

import "github.com/shopspring/decimal"

// ImportRejectDTO fila descartada en la importación (Row es base 1, sin contar el encabezado).
type ImportRejectDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSummary resultado de importar un archivo de ventas.
type ImportSummary struct {
	BatchID  string            `json:"batch_id"`
	FileName string            `json:"file_name,omitempty"`
	Accepted int               `json:"accepted"`
	Rejected int               `json:"rejected"`
	Inserted int64             `json:"inserted"`
	Rejects  []ImportRejectDTO `json:"rejects,omitempty"`
}

// SalesListRequest filtros del listado de ventas.
type SalesListRequest struct {
	PageRequest
	Search string `query:"search"`
	Layer  string `query:"layer"`
}

// SaleRecordDTO salida de un registro de venta.
type SaleRecordDTO struct {
	ID            int64           `json:"id"`
	SalesDay      string          `json:"sales_day"`
	Layer1Code    string          `json:"layer1_code"`
	Barcode       string          `json:"barcode"`
	ItemName      string          `json:"item_name"`
	Qty           decimal.Decimal `json:"qty"`
	AmountExclTax decimal.Decimal `json:"amount_excl_tax"`
	TransactionID string          `json:"transaction_id"`
}

// SalesListResponse página de registros de venta.
type SalesListResponse struct {
	Items []SaleRecordDTO `json:"items"`
	Page  PageResponse    `json:"page"`
}

// SalesDayDTO día de venta con su cantidad de registros.
type SalesDayDTO struct {
	SalesDay string `json:"sales_day"`
	Records  int    `json:"records"`
}

// DeleteResult filas eliminadas.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
