// Command import carga catálogos de eventos (.xlsx) y exports de ventas (.csv)
// desde disco usando los mismos casos de uso que la API.
//
//	import -catalog promo.xlsx -name "Tết 2024" -start 2024-03-01 -end 2024-03-10
//	import -sales ventas_0301.csv ventas_0302.csv ...
//
// Sale con código 1 si algún archivo tiene formato inválido.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/application/usecase"
	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/csvsource"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/excel"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/postgres"
	"github.com/jhoicas/promo-tracker/pkg/config"
	"github.com/jhoicas/promo-tracker/pkg/logger"
)

func main() {
	catalog := flag.String("catalog", "", "libro .xlsx con el catálogo del evento")
	name := flag.String("name", "", "nombre del evento (con -catalog)")
	start := flag.String("start", "", "fecha de inicio del evento (con -catalog)")
	end := flag.String("end", "", "fecha de fin del evento (con -catalog)")
	sales := flag.Bool("sales", false, "importar los CSV de ventas pasados como argumentos")
	flag.Parse()

	if *catalog == "" && !*sales {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var runErr error
	if *catalog != "" {
		uc := usecase.NewEventUseCase(postgres.NewTxRunner(pool), postgres.NewEventRepository(pool), excel.CatalogReader{}, log)
		runErr = importCatalog(ctx, uc, *catalog, dto.CreateEventRequest{Name: *name, StartDate: *start, EndDate: *end})
	} else {
		csvReader, err := csvsource.NewReader(cfg.Import.LegacyCharset)
		if err != nil {
			log.Fatal().Err(err).Msg("lector CSV")
		}
		uc := usecase.NewSalesUseCase(postgres.NewSaleRepository(pool), csvReader, log)
		runErr = importSales(ctx, uc, flag.Args())
	}

	if runErr != nil {
		log.Error().Err(runErr).Msg("importación fallida")
		pool.Close()
		os.Exit(1)
	}
}

func importCatalog(ctx context.Context, uc *usecase.EventUseCase, path string, in dto.CreateEventRequest) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("leer %s: %w", path, err)
	}
	ev, err := uc.Create(ctx, in, data)
	if err != nil {
		return err
	}
	fmt.Printf("evento %s creado: %s (%s → %s), %d productos\n",
		ev.ID, ev.Name, ev.StartDate, ev.EndDate, ev.ProductCount)
	return nil
}

// importSales procesa cada archivo de forma independiente: un archivo inválido
// no impide importar los demás, pero la salida final es error.
func importSales(ctx context.Context, uc *usecase.SalesUseCase, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no se indicaron archivos CSV")
	}
	bar := progressbar.Default(int64(len(paths)), "importando ventas")

	var (
		total    dto.ImportSummary
		failures []error
	)
	for _, p := range paths {
		sum, err := importFile(ctx, uc, p)
		_ = bar.Add(1)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", filepath.Base(p), err))
			continue
		}
		total.Accepted += sum.Accepted
		total.Rejected += sum.Rejected
		total.Inserted += sum.Inserted
	}

	fmt.Printf("archivos: %d, aceptadas: %d, rechazadas: %d, insertadas: %d\n",
		len(paths)-len(failures), total.Accepted, total.Rejected, total.Inserted)
	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	return nil
}

func importFile(ctx context.Context, uc *usecase.SalesUseCase, path string) (*dto.ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewFileFormatError("sales", "abrir archivo", err)
	}
	defer f.Close()
	return uc.Import(ctx, f, filepath.Base(path))
}
