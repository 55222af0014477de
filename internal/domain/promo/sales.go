package promo

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/promo-tracker/internal/domain/entity"
)

// Row fila de CSV indexada por nombre de columna.
type Row map[string]string

// Alias aceptados por campo, en orden de prioridad. Los exports del POS usan
// encabezados de pantalla ("Sales Day") y los respaldos de base de datos snake_case.
var (
	salesDayColumns    = []string{"Sales Day", "sales_day"}
	layer1CodeColumns  = []string{"Layer1 Code", "layer1_code"}
	barcodeColumns     = []string{"Barcode", "barcode"}
	itemNameColumns    = []string{"Item Name", "item_name"}
	qtyColumns         = []string{"QTY", "qty"}
	amountColumns      = []string{"Amount(Tax excl.)", "amount_excl_tax"}
	transactionColumns = []string{"Slip No.", "slip_no", "Transaction", "transaction"}
)

// Motivos de rechazo de una fila.
const (
	RejectMissingSalesDay = "sales_day vacío"
	RejectMissingBarcode  = "barcode vacío"
)

// RowReject fila descartada y su motivo. Index es la posición en el lote (base 0).
type RowReject struct {
	Index  int
	Reason string
}

// SalesBatch resultado de construir un lote: registros aceptados y filas rechazadas.
type SalesBatch struct {
	Records  []entity.SaleRecord
	Rejected []RowReject
}

// Accepted cantidad de registros válidos.
func (b SalesBatch) Accepted() int { return len(b.Records) }

// RejectedCount cantidad de filas descartadas.
func (b SalesBatch) RejectedCount() int { return len(b.Rejected) }

// BuildSaleRecord mapea una fila al registro canónico. Devuelve false y el motivo
// si sales_day o barcode quedan vacíos. Solo se rechaza por vacío: una fecha no
// reconocida conserva su texto original y se acepta.
func BuildSaleRecord(row Row) (entity.SaleRecord, string, bool) {
	rec := entity.SaleRecord{
		SalesDay:      NormalizeDate(pick(row, salesDayColumns)),
		Layer1Code:    strings.TrimSpace(pick(row, layer1CodeColumns)),
		Barcode:       strings.TrimSpace(pick(row, barcodeColumns)),
		ItemName:      strings.TrimSpace(pick(row, itemNameColumns)),
		Qty:           toDecimal(pick(row, qtyColumns)),
		AmountExclTax: toDecimal(pick(row, amountColumns)),
		TransactionID: strings.TrimSpace(pick(row, transactionColumns)),
	}
	if rec.SalesDay == "" {
		return entity.SaleRecord{}, RejectMissingSalesDay, false
	}
	if rec.Barcode == "" {
		return entity.SaleRecord{}, RejectMissingBarcode, false
	}
	return rec, "", true
}

// BuildSalesBatch procesa el lote completo; las filas inválidas no abortan el lote.
func BuildSalesBatch(rows []Row) SalesBatch {
	batch := SalesBatch{Records: make([]entity.SaleRecord, 0, len(rows))}
	for i, row := range rows {
		rec, reason, ok := BuildSaleRecord(row)
		if !ok {
			batch.Rejected = append(batch.Rejected, RowReject{Index: i, Reason: reason})
			continue
		}
		batch.Records = append(batch.Records, rec)
	}
	return batch
}

// pick devuelve el primer alias con valor no vacío.
func pick(row Row, columns []string) string {
	for _, c := range columns {
		if v, ok := row[c]; ok && v != "" {
			return v
		}
	}
	return ""
}

// toDecimal convierte texto numérico; lo no numérico vale cero.
func toDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
