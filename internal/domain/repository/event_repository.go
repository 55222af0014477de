package repository

import (
	"context"

	"github.com/jhoicas/promo-tracker/internal/domain/entity"
)

// EventRepository define el puerto de persistencia para eventos y su catálogo (DIP).
type EventRepository interface {
	// Create persiste el evento y todos sus productos de forma atómica.
	Create(ctx context.Context, event *entity.Event) error
	// GetByID devuelve el evento con sus productos; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	// GetByNameAndStart busca el evento por nombre y fecha de inicio; (nil, nil) si no existe.
	GetByNameAndStart(ctx context.Context, name, startDate string) (*entity.Event, error)
	// List devuelve los eventos sin productos, más recientes primero.
	List(ctx context.Context) ([]*entity.Event, error)
	Delete(ctx context.Context, id string) error
}
