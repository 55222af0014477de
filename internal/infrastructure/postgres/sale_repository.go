package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre la tabla daily_sales (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

var saleCopyColumns = []string{
	"sales_day", "layer1_code", "barcode", "item_name", "qty", "amount_excl_tax", "transaction_id",
}

// InsertBatch inserta el lote completo con COPY dentro de una transacción:
// si falla cualquier fila no queda nada insertado.
func (r *SaleRepo) InsertBatch(ctx context.Context, records []entity.SaleRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	var inserted int64
	err := withTx(ctx, r.q, func(tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"daily_sales"},
			saleCopyColumns,
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				s := records[i]
				return []any{
					s.SalesDay, s.Layer1Code, s.Barcode, s.ItemName,
					s.Qty, s.AmountExclTax, s.TransactionID,
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy daily_sales: %w", err)
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

const saleColumns = `id, sales_day, layer1_code, barcode, item_name, qty, amount_excl_tax, transaction_id`

// All devuelve todos los registros en orden de inserción.
func (r *SaleRepo) All(ctx context.Context) ([]entity.SaleRecord, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM daily_sales ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list all sales: %w", err)
	}
	return scanSales(rows)
}

// List aplica búsqueda (barcode o nombre, sin distinguir mayúsculas) y filtro por
// layer1_code. Devuelve la página pedida y el total sin paginar.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]entity.SaleRecord, int, error) {
	var (
		conds []string
		args  []any
	)
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		conds = append(conds, fmt.Sprintf("(barcode LIKE $%d OR item_name ILIKE $%d)", len(args), len(args)))
	}
	if l := strings.TrimSpace(filter.Layer); l != "" {
		args = append(args, l)
		conds = append(conds, fmt.Sprintf("layer1_code = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM daily_sales`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM daily_sales%s ORDER BY sales_day DESC, id LIMIT $%d OFFSET $%d`,
		saleColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	list, err := scanSales(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Layers códigos layer1 distintos y no vacíos, ordenados.
func (r *SaleRepo) Layers(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT layer1_code FROM daily_sales WHERE layer1_code <> '' ORDER BY layer1_code`)
	if err != nil {
		return nil, fmt.Errorf("list layers: %w", err)
	}
	defer rows.Close()

	list := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan layer: %w", err)
		}
		list = append(list, code)
	}
	return list, rows.Err()
}

// Days días de venta distintos con su cantidad de registros, más recientes primero.
func (r *SaleRepo) Days(ctx context.Context) ([]entity.SalesDaySummary, error) {
	rows, err := r.q.Query(ctx,
		`SELECT sales_day, COUNT(*) FROM daily_sales GROUP BY sales_day ORDER BY sales_day DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sales days: %w", err)
	}
	defer rows.Close()

	list := []entity.SalesDaySummary{}
	for rows.Next() {
		var d entity.SalesDaySummary
		if err := rows.Scan(&d.SalesDay, &d.Records); err != nil {
			return nil, fmt.Errorf("scan sales day: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// DeleteAll vacía la tabla y devuelve las filas eliminadas.
func (r *SaleRepo) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM daily_sales`)
	if err != nil {
		return 0, fmt.Errorf("delete all sales: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByDay elimina los registros cuyo sales_day es exactamente salesDay.
func (r *SaleRepo) DeleteByDay(ctx context.Context, salesDay string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM daily_sales WHERE sales_day = $1`, salesDay)
	if err != nil {
		return 0, fmt.Errorf("delete sales by day: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanSales(rows pgx.Rows) ([]entity.SaleRecord, error) {
	defer rows.Close()
	list := []entity.SaleRecord{}
	for rows.Next() {
		var s entity.SaleRecord
		if err := rows.Scan(&s.ID, &s.SalesDay, &s.Layer1Code, &s.Barcode, &s.ItemName,
			&s.Qty, &s.AmountExclTax, &s.TransactionID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return list, nil
}
