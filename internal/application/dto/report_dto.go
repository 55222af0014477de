package dto

import "github.com/shopspring/decimal"

// ProductStatDTO acumulado de un producto en la ventana del reporte.
type ProductStatDTO struct {
	Barcode  string          `json:"barcode"`
	ItemName string          `json:"item_name"`
	Qty      decimal.Decimal `json:"qty"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ReportResponse reporte de un evento a una fecha. HasData=false significa
// "sin datos" (no es error) y los demás campos van en cero.
type ReportResponse struct {
	HasData        bool             `json:"has_data"`
	EventID        string           `json:"event_id"`
	EventName      string           `json:"event_name"`
	ReportDate     string           `json:"report_date"`
	WindowStart    string           `json:"window_start"`
	WindowEnd      string           `json:"window_end"`
	DayRevenue     decimal.Decimal  `json:"day_revenue"`
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	TotalQty       decimal.Decimal  `json:"total_qty"`
	TotalCustomers int              `json:"total_customers"`
	TopByQty       []ProductStatDTO `json:"top_by_qty"`
	TopByRevenue   []ProductStatDTO `json:"top_by_revenue"`
	Products       []ProductStatDTO `json:"products"`
}

// NoDataResponse cuerpo HTTP cuando el reporte no tiene datos.
type NoDataResponse struct {
	HasData bool `json:"has_data"`
}
