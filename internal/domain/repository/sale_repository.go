package repository

import (
	"context"

	"github.com/jhoicas/promo-tracker/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	Search string // subcadena del barcode o del nombre (sin distinguir mayúsculas)
	Layer  string // layer1_code exacto; vacío = todos
	Limit  int
	Offset int
}

// SaleRepository define el puerto de persistencia para los registros de venta diarios.
type SaleRepository interface {
	// InsertBatch inserta todo el lote o nada; devuelve la cantidad insertada.
	InsertBatch(ctx context.Context, records []entity.SaleRecord) (int64, error)
	// All devuelve una instantánea completa de los registros (entrada del motor de agregación).
	All(ctx context.Context) ([]entity.SaleRecord, error)
	List(ctx context.Context, filter SaleFilter) ([]entity.SaleRecord, int, error)
	Layers(ctx context.Context) ([]string, error)
	Days(ctx context.Context) ([]entity.SalesDaySummary, error)
	DeleteAll(ctx context.Context) (int64, error)
	DeleteByDay(ctx context.Context, salesDay string) (int64, error)
}
