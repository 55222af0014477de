package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/promo"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
	"github.com/jhoicas/promo-tracker/pkg/logger"
)

const maxSalesPage = 500

// SalesUseCase importación y mantenimiento de los registros de venta diarios.
type SalesUseCase struct {
	repo   repository.SaleRepository
	source SalesSource
	log    *logger.Logger
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(repo repository.SaleRepository, source SalesSource, log *logger.Logger) *SalesUseCase {
	return &SalesUseCase{repo: repo, source: source, log: log.Component("sales")}
}

// Import lee el archivo, construye el lote y lo inserta de forma atómica.
// Las filas rechazadas no abortan el lote: se registran en debug y se devuelven
// en el resumen. Un archivo ilegible o vacío devuelve *domain.FileFormatError.
func (uc *SalesUseCase) Import(ctx context.Context, r io.Reader, fileName string) (*dto.ImportSummary, error) {
	batchID := uuid.New().String()
	log := uc.log.Zerolog().With().Str("batch_id", batchID).Str("file", fileName).Logger()

	rows, err := uc.source.ReadRows(r)
	if err != nil {
		log.Warn().Err(err).Msg("archivo de ventas rechazado")
		return nil, err
	}

	batch := promo.BuildSalesBatch(rows)
	summary := &dto.ImportSummary{
		BatchID:  batchID,
		FileName: fileName,
		Accepted: batch.Accepted(),
		Rejected: batch.RejectedCount(),
	}
	for _, rej := range batch.Rejected {
		log.Debug().Int("row", rej.Index+1).Str("reason", rej.Reason).Msg("fila rechazada")
		summary.Rejects = append(summary.Rejects, dto.ImportRejectDTO{Row: rej.Index + 1, Reason: rej.Reason})
	}

	inserted, err := uc.repo.InsertBatch(ctx, batch.Records)
	if err != nil {
		log.Error().Err(err).Int("accepted", summary.Accepted).Msg("fallo al insertar lote")
		return nil, fmt.Errorf("importar ventas: %w", err)
	}
	summary.Inserted = inserted

	log.Info().
		Int("accepted", summary.Accepted).
		Int("rejected", summary.Rejected).
		Int64("inserted", inserted).
		Msg("lote de ventas importado")
	return summary, nil
}

// List página de registros filtrada.
func (uc *SalesUseCase) List(ctx context.Context, in dto.SalesListRequest) (*dto.SalesListResponse, error) {
	in.DefaultPage()
	in.ClampLimit(maxSalesPage)
	records, total, err := uc.repo.List(ctx, repository.SaleFilter{
		Search: in.Search,
		Layer:  in.Layer,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.SalesListResponse{
		Items: make([]dto.SaleRecordDTO, 0, len(records)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, s := range records {
		out.Items = append(out.Items, toSaleRecordDTO(s))
	}
	return out, nil
}

// Layers códigos layer1 disponibles para el filtro.
func (uc *SalesUseCase) Layers(ctx context.Context) ([]string, error) {
	return uc.repo.Layers(ctx)
}

// Days días de venta cargados con su cantidad de registros.
func (uc *SalesUseCase) Days(ctx context.Context) ([]dto.SalesDayDTO, error) {
	days, err := uc.repo.Days(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesDayDTO, len(days))
	for i, d := range days {
		out[i] = dto.SalesDayDTO{SalesDay: d.SalesDay, Records: d.Records}
	}
	return out, nil
}

// DeleteAll elimina todos los registros de venta.
func (uc *SalesUseCase) DeleteAll(ctx context.Context) (*dto.DeleteResult, error) {
	n, err := uc.repo.DeleteAll(ctx)
	if err != nil {
		return nil, err
	}
	uc.log.Warn().Int64("deleted", n).Msg("ventas eliminadas (todas)")
	return &dto.DeleteResult{Deleted: n}, nil
}

// DeleteByDay elimina los registros de un día. La fecha se normaliza y debe
// quedar canónica (domain.ErrInvalidInput si no).
func (uc *SalesUseCase) DeleteByDay(ctx context.Context, day string) (*dto.DeleteResult, error) {
	d := promo.NormalizeDate(day)
	if !promo.IsCanonicalDate(d) {
		return nil, fmt.Errorf("fecha %q no reconocida: %w", day, domain.ErrInvalidInput)
	}
	n, err := uc.repo.DeleteByDay(ctx, d)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sales_day", d).Int64("deleted", n).Msg("ventas eliminadas por día")
	return &dto.DeleteResult{Deleted: n}, nil
}

func toSaleRecordDTO(s entity.SaleRecord) dto.SaleRecordDTO {
	return dto.SaleRecordDTO{
		ID:            s.ID,
		SalesDay:      s.SalesDay,
		Layer1Code:    s.Layer1Code,
		Barcode:       s.Barcode,
		ItemName:      s.ItemName,
		Qty:           s.Qty,
		AmountExclTax: s.AmountExclTax,
		TransactionID: s.TransactionID,
	}
}
