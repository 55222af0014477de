package dto

import "time"

// CreateEventRequest campos del formulario de creación de evento (el libro va aparte).
type CreateEventRequest struct {
	Name      string `json:"name" form:"name" validate:"required"`
	StartDate string `json:"start_date" form:"start_date" validate:"required"`
	EndDate   string `json:"end_date" form:"end_date" validate:"required"`
}

// EventProductDTO una fila del catálogo.
type EventProductDTO struct {
	Barcode  string `json:"barcode"`
	ItemName string `json:"item_name"`
}

// EventResponse salida de un evento. Products solo se llena en el detalle.
type EventResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	ProductCount int               `json:"product_count"`
	Products     []EventProductDTO `json:"products,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// EventListResponse listado de eventos.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
}
