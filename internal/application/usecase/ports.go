package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/promo"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		events repository.EventRepository,
		sales repository.SaleRepository,
	) error) error
}

// CatalogSource extrae el catálogo de un libro de cálculo.
// Devuelve *domain.FileFormatError si el libro es ilegible o no tiene productos.
type CatalogSource interface {
	Extract(data []byte) ([]entity.EventProduct, error)
}

// SalesSource convierte un archivo de ventas en filas indexadas por columna.
// Devuelve *domain.FileFormatError si el archivo es ilegible o está vacío.
type SalesSource interface {
	ReadRows(r io.Reader) ([]promo.Row, error)
}

// ReportRenderer renderiza el reporte para descarga (PDF).
type ReportRenderer interface {
	RenderReport(report *dto.ReportResponse) ([]byte, error)
}
