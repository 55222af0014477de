package promo

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/promo-tracker/internal/domain/entity"
)

// DefaultTopN tamaño de los rankings por cantidad y por ingreso.
const DefaultTopN = 5

// ProductStat acumulado de un barcode dentro de la ventana del reporte.
type ProductStat struct {
	Barcode  string
	ItemName string
	Qty      decimal.Decimal
	Revenue  decimal.Decimal
}

// Report vista derivada de (evento, fecha de reporte, ventas). No se persiste:
// se recalcula en cada lectura.
type Report struct {
	EventID        string
	EventName      string
	ReportDate     string
	WindowStart    string // StartDate del evento
	WindowEnd      string // min(ReportDate, EndDate del evento)
	DayRevenue     decimal.Decimal
	TotalRevenue   decimal.Decimal
	TotalQty       decimal.Decimal
	TotalCustomers int
	TopByQty       []ProductStat
	TopByRevenue   []ProductStat
	Products       []ProductStat // todos los productos con ventas, por ingreso descendente
}

// BuildReport calcula el reporte del evento a la fecha indicada.
//
// Devuelve false (sin datos) si el evento es nil, no hay ventas o reportDate está vacío.
// Las fechas se comparan como texto, lo cual solo es válido porque todas son
// canónicas YYYY-MM-DD. topN <= 0 usa DefaultTopN.
func BuildReport(event *entity.Event, reportDate string, sales []entity.SaleRecord, topN int) (*Report, bool) {
	if event == nil || len(sales) == 0 || reportDate == "" {
		return nil, false
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	joinSet := eventBarcodes(event)

	effectiveEnd := reportDate
	if reportDate > event.EndDate {
		effectiveEnd = event.EndDate
	}

	rep := &Report{
		EventID:      event.ID,
		EventName:    event.Name,
		ReportDate:   reportDate,
		WindowStart:  event.StartDate,
		WindowEnd:    effectiveEnd,
		DayRevenue:   decimal.Zero,
		TotalRevenue: decimal.Zero,
		TotalQty:     decimal.Zero,
	}

	// Acumuladores en orden de aparición; el nombre lo fija el primer registro visto.
	var stats []*ProductStat
	index := make(map[string]int)
	customers := make(map[string]struct{})

	for _, s := range sales {
		barcode := strings.TrimSpace(s.Barcode)
		if _, ok := joinSet[barcode]; !ok {
			continue
		}
		if s.SalesDay == reportDate {
			rep.DayRevenue = rep.DayRevenue.Add(s.AmountExclTax)
		}
		if s.SalesDay < event.StartDate || s.SalesDay > effectiveEnd {
			continue
		}

		rep.TotalRevenue = rep.TotalRevenue.Add(s.AmountExclTax)
		rep.TotalQty = rep.TotalQty.Add(s.Qty)
		if s.TransactionID != "" {
			customers[s.TransactionID] = struct{}{}
		}

		i, ok := index[barcode]
		if !ok {
			i = len(stats)
			index[barcode] = i
			stats = append(stats, &ProductStat{
				Barcode:  barcode,
				ItemName: s.ItemName,
				Qty:      decimal.Zero,
				Revenue:  decimal.Zero,
			})
		}
		stats[i].Qty = stats[i].Qty.Add(s.Qty)
		stats[i].Revenue = stats[i].Revenue.Add(s.AmountExclTax)
	}
	rep.TotalCustomers = len(customers)

	byRevenue := copyStats(stats)
	sort.SliceStable(byRevenue, func(i, j int) bool {
		return byRevenue[i].Revenue.GreaterThan(byRevenue[j].Revenue)
	})
	byQty := copyStats(stats)
	sort.SliceStable(byQty, func(i, j int) bool {
		return byQty[i].Qty.GreaterThan(byQty[j].Qty)
	})

	rep.Products = byRevenue
	rep.TopByRevenue = head(byRevenue, topN)
	rep.TopByQty = head(byQty, topN)
	return rep, true
}

// LatestSalesDay devuelve el mayor sales_day canónico del conjunto, o "" si no hay.
func LatestSalesDay(sales []entity.SaleRecord) string {
	latest := ""
	for _, s := range sales {
		if IsCanonicalDate(s.SalesDay) && s.SalesDay > latest {
			latest = s.SalesDay
		}
	}
	return latest
}

// eventBarcodes conjunto de barcodes distintos del catálogo (llave del cruce).
func eventBarcodes(event *entity.Event) map[string]struct{} {
	set := make(map[string]struct{}, len(event.Products))
	for _, p := range event.Products {
		if b := strings.TrimSpace(p.Barcode); b != "" {
			set[b] = struct{}{}
		}
	}
	return set
}

func copyStats(stats []*ProductStat) []ProductStat {
	out := make([]ProductStat, len(stats))
	for i, s := range stats {
		out[i] = *s
	}
	return out
}

func head(stats []ProductStat, n int) []ProductStat {
	if len(stats) > n {
		stats = stats[:n]
	}
	out := make([]ProductStat, len(stats))
	copy(out, stats)
	return out
}
