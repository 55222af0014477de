package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/promo"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
	"github.com/jhoicas/promo-tracker/pkg/logger"
)

// ReportUseCase calcula el reporte de un evento sobre la instantánea de ventas.
type ReportUseCase struct {
	events   repository.EventRepository
	sales    repository.SaleRepository
	renderer ReportRenderer
	topN     int
	log      *logger.Logger
}

// NewReportUseCase construye el caso de uso. topN <= 0 usa promo.DefaultTopN.
func NewReportUseCase(
	events repository.EventRepository,
	sales repository.SaleRepository,
	renderer ReportRenderer,
	topN int,
	log *logger.Logger,
) *ReportUseCase {
	if topN <= 0 {
		topN = promo.DefaultTopN
	}
	return &ReportUseCase{events: events, sales: sales, renderer: renderer, topN: topN, log: log.Component("report")}
}

// Get calcula el reporte del evento a reportDate.
//
// reportDate vacío usa el último día de venta cargado. Una fecha explícita pasa
// por el normalizador y debe quedar canónica (domain.ErrInvalidInput). Evento
// inexistente → domain.ErrNotFound. Sin ventas: HasData=false, sin error.
func (uc *ReportUseCase) Get(ctx context.Context, eventID, reportDate string) (*dto.ReportResponse, error) {
	date := ""
	if reportDate != "" {
		date = promo.NormalizeDate(reportDate)
		if !promo.IsCanonicalDate(date) {
			return nil, fmt.Errorf("fecha de reporte %q no reconocida: %w", reportDate, domain.ErrInvalidInput)
		}
	}

	// Evento y ventas son lecturas independientes.
	var (
		event *entity.Event
		sales []entity.SaleRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ev, err := uc.events.GetByID(gctx, eventID)
		if err != nil {
			return fmt.Errorf("reporte: evento: %w", err)
		}
		event = ev
		return nil
	})
	g.Go(func() error {
		s, err := uc.sales.All(gctx)
		if err != nil {
			return fmt.Errorf("reporte: ventas: %w", err)
		}
		sales = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}

	if date == "" {
		date = promo.LatestSalesDay(sales)
	}
	rep, ok := promo.BuildReport(event, date, sales, uc.topN)
	if !ok {
		uc.log.Debug().Str("event_id", eventID).Str("date", date).Int("sales", len(sales)).Msg("reporte sin datos")
		return &dto.ReportResponse{HasData: false}, nil
	}
	return toReportResponse(rep), nil
}

// PDF renderiza el reporte. Un reporte sin datos no se exporta (domain.ErrNotFound).
func (uc *ReportUseCase) PDF(ctx context.Context, eventID, reportDate string) ([]byte, *dto.ReportResponse, error) {
	rep, err := uc.Get(ctx, eventID, reportDate)
	if err != nil {
		return nil, nil, err
	}
	if !rep.HasData {
		return nil, rep, fmt.Errorf("reporte sin datos: %w", domain.ErrNotFound)
	}
	if uc.renderer == nil {
		return nil, nil, fmt.Errorf("exportación PDF no configurada")
	}
	out, err := uc.renderer.RenderReport(rep)
	if err != nil {
		return nil, nil, fmt.Errorf("renderizar PDF: %w", err)
	}
	return out, rep, nil
}

func toReportResponse(r *promo.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		HasData:        true,
		EventID:        r.EventID,
		EventName:      r.EventName,
		ReportDate:     r.ReportDate,
		WindowStart:    r.WindowStart,
		WindowEnd:      r.WindowEnd,
		DayRevenue:     r.DayRevenue,
		TotalRevenue:   r.TotalRevenue,
		TotalQty:       r.TotalQty,
		TotalCustomers: r.TotalCustomers,
		TopByQty:       toProductStatDTOs(r.TopByQty),
		TopByRevenue:   toProductStatDTOs(r.TopByRevenue),
		Products:       toProductStatDTOs(r.Products),
	}
}

func toProductStatDTOs(stats []promo.ProductStat) []dto.ProductStatDTO {
	out := make([]dto.ProductStatDTO, len(stats))
	for i, s := range stats {
		out[i] = dto.ProductStatDTO{Barcode: s.Barcode, ItemName: s.ItemName, Qty: s.Qty, Revenue: s.Revenue}
	}
	return out
}
