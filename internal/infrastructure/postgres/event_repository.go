package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo implementación de EventRepository (usable con pool o tx).
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

// Create persiste la cabecera y el catálogo en una sola transacción.
// Nombre + fecha de inicio repetidos → domain.ErrDuplicate.
func (r *EventRepo) Create(ctx context.Context, event *entity.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	eventUUID, err := uuid.Parse(event.ID)
	if err != nil {
		return fmt.Errorf("event id: %w", err)
	}
	return withTx(ctx, r.q, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO events (id, name, start_date, end_date)
			VALUES ($1, $2, $3::date, $4::date)
			RETURNING created_at`,
			event.ID, event.Name, event.StartDate, event.EndDate,
		).Scan(&event.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert event: %w", err)
		}

		rows := make([][]any, len(event.Products))
		for i, p := range event.Products {
			rows[i] = []any{eventUUID, int32(i), p.Barcode, p.ItemName}
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"event_products"},
			[]string{"event_id", "position", "barcode", "item_name"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("insert event products: %w", err)
		}
		return nil
	})
}

const eventColumns = `id, name, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), created_at`

// GetByID obtiene el evento con su catálogo en el orden de importación.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var ev entity.Event
	err := r.q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id).Scan(
		&ev.ID, &ev.Name, &ev.StartDate, &ev.EndDate, &ev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	products, err := r.products(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	ev.Products = products
	return &ev, nil
}

// GetByNameAndStart busca por la llave natural del evento. No carga el catálogo.
func (r *EventRepo) GetByNameAndStart(ctx context.Context, name, startDate string) (*entity.Event, error) {
	var ev entity.Event
	err := r.q.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE name = $1 AND start_date = $2::date`,
		name, startDate,
	).Scan(&ev.ID, &ev.Name, &ev.StartDate, &ev.EndDate, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event by name: %w", err)
	}
	return &ev, nil
}

// List devuelve los eventos con Products vacío; el conteo de productos se omite.
func (r *EventRepo) List(ctx context.Context) ([]*entity.Event, error) {
	rows, err := r.q.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var list []*entity.Event
	for rows.Next() {
		var ev entity.Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.StartDate, &ev.EndDate, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, &ev)
	}
	return list, rows.Err()
}

// Delete elimina el evento; el catálogo cae por ON DELETE CASCADE.
// Un ID inexistente devuelve domain.ErrNotFound.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepo) products(ctx context.Context, eventID string) ([]entity.EventProduct, error) {
	rows, err := r.q.Query(ctx,
		`SELECT barcode, item_name FROM event_products WHERE event_id = $1 ORDER BY position`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event products: %w", err)
	}
	defer rows.Close()

	list := []entity.EventProduct{}
	for rows.Next() {
		var p entity.EventProduct
		if err := rows.Scan(&p.Barcode, &p.ItemName); err != nil {
			return nil, fmt.Errorf("scan event product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
