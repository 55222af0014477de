package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/promo"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
	"github.com/jhoicas/promo-tracker/pkg/logger"
)

// EventUseCase alta, consulta y baja de eventos promocionales.
type EventUseCase struct {
	tx      TxRunner
	repo    repository.EventRepository
	catalog CatalogSource
	log     *logger.Logger
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(tx TxRunner, repo repository.EventRepository, catalog CatalogSource, log *logger.Logger) *EventUseCase {
	return &EventUseCase{tx: tx, repo: repo, catalog: catalog, log: log.Component("events")}
}

// Create valida la cabecera, extrae el catálogo del libro y persiste el evento.
//
// Las fechas pasan por el normalizador y deben quedar canónicas con inicio <= fin
// (domain.ErrInvalidInput). Un libro sin productos es domain.ErrFileFormat.
// Nombre + inicio ya existentes → domain.ErrDuplicate.
func (uc *EventUseCase) Create(ctx context.Context, in dto.CreateEventRequest, workbook []byte) (*dto.EventResponse, error) {
	name := strings.TrimSpace(in.Name)
	start := promo.NormalizeDate(in.StartDate)
	end := promo.NormalizeDate(in.EndDate)
	if name == "" {
		return nil, fmt.Errorf("nombre del evento requerido: %w", domain.ErrInvalidInput)
	}
	if !promo.IsCanonicalDate(start) || !promo.IsCanonicalDate(end) {
		return nil, fmt.Errorf("fechas del evento no reconocidas (%q, %q): %w", in.StartDate, in.EndDate, domain.ErrInvalidInput)
	}
	if start > end {
		return nil, fmt.Errorf("inicio %s posterior al fin %s: %w", start, end, domain.ErrInvalidInput)
	}

	products, err := uc.catalog.Extract(workbook)
	if err != nil {
		uc.log.Warn().Err(err).Str("event", name).Msg("catálogo rechazado")
		return nil, err
	}

	event := &entity.Event{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Products:  products,
	}
	err = uc.tx.Run(ctx, func(events repository.EventRepository, _ repository.SaleRepository) error {
		existing, err := events.GetByNameAndStart(ctx, name, start)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return events.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("event_id", event.ID).
		Str("event", event.Name).
		Str("start", event.StartDate).
		Str("end", event.EndDate).
		Int("products", event.ProductCount()).
		Msg("evento creado")
	return toEventResponse(event, true), nil
}

// GetByID devuelve el evento con su catálogo; domain.ErrNotFound si no existe.
func (uc *EventUseCase) GetByID(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	return toEventResponse(event, true), nil
}

// List devuelve los eventos sin catálogo.
func (uc *EventUseCase) List(ctx context.Context) (*dto.EventListResponse, error) {
	events, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.EventListResponse{Items: make([]dto.EventResponse, 0, len(events))}
	for _, e := range events {
		out.Items = append(out.Items, *toEventResponse(e, false))
	}
	return out, nil
}

// Delete elimina el evento y su catálogo. Las ventas no se tocan.
func (uc *EventUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("event_id", id).Msg("evento eliminado")
	return nil
}

func toEventResponse(e *entity.Event, withProducts bool) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		ProductCount: e.ProductCount(),
		CreatedAt:    e.CreatedAt,
	}
	if withProducts {
		resp.Products = make([]dto.EventProductDTO, len(e.Products))
		for i, p := range e.Products {
			resp.Products[i] = dto.EventProductDTO{Barcode: p.Barcode, ItemName: p.ItemName}
		}
	}
	return resp
}
