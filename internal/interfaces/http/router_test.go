package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/application/usecase"
	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/csvsource"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/excel"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/promo-tracker/internal/interfaces/http"
	"github.com/jhoicas/promo-tracker/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type memEvents struct {
	mu     sync.Mutex
	events []*entity.Event
}

func (m *memEvents) Create(_ context.Context, e *entity.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.events = append(m.events, &cp)
	return nil
}

func (m *memEvents) GetByID(_ context.Context, id string) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memEvents) GetByNameAndStart(_ context.Context, name, start string) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.Name == name && e.StartDate == start {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memEvents) List(_ context.Context) ([]*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Event(nil), m.events...), nil
}

func (m *memEvents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.events {
		if e.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memSales struct {
	mu      sync.Mutex
	records []entity.SaleRecord
}

func (m *memSales) InsertBatch(_ context.Context, recs []entity.SaleRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, recs...)
	return int64(len(recs)), nil
}

func (m *memSales) All(_ context.Context) ([]entity.SaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.SaleRecord(nil), m.records...), nil
}

func (m *memSales) List(_ context.Context, f repository.SaleFilter) ([]entity.SaleRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.SaleRecord
	for _, r := range m.records {
		if f.Layer == "" || r.Layer1Code == f.Layer {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (m *memSales) Layers(_ context.Context) ([]string, error) { return []string{}, nil }

func (m *memSales) Days(_ context.Context) ([]entity.SalesDaySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, r := range m.records {
		counts[r.SalesDay]++
	}
	out := []entity.SalesDaySummary{}
	for d, n := range counts {
		out = append(out, entity.SalesDaySummary{SalesDay: d, Records: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SalesDay > out[j].SalesDay })
	return out, nil
}

func (m *memSales) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.records))
	m.records = nil
	return n, nil
}

func (m *memSales) DeleteByDay(_ context.Context, day string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []entity.SaleRecord
	var n int64
	for _, r := range m.records {
		if r.SalesDay == day {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return n, nil
}

type memTx struct {
	events *memEvents
	sales  *memSales
}

func (t memTx) Run(_ context.Context, fn func(repository.EventRepository, repository.SaleRepository) error) error {
	return fn(t.events, t.sales)
}

// buildTestApp arma la app Fiber con casos de uso reales sobre repos en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *memSales) {
	t.Helper()
	events, sales := &memEvents{}, &memSales{}
	log := logger.Nop()

	csvReader, err := csvsource.NewReader("windows-1252")
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:  "promo-tracker-test",
		EventUC:  usecase.NewEventUseCase(memTx{events, sales}, events, excel.CatalogReader{}, log),
		SalesUC:  usecase.NewSalesUseCase(sales, csvReader, log),
		ReportUC: usecase.NewReportUseCase(events, sales, pdf.NewReportPDF("test"), 5, log),
	})
	return app, sales
}

func catalogXLSX(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"KHUYẾN MÃI THÁNG 3"},
		{"STT", "Barcode", "Item Name"},
		{1, "111", "Leche"},
		{2, "222", "Té"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// multipartBody arma un formulario con campos y un archivo "file".
func multipartBody(t *testing.T, fields map[string]string, fileName string, file []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func createEvent(t *testing.T, app *fiber.App) dto.EventResponse {
	t.Helper()
	body, ct := multipartBody(t, map[string]string{
		"name": "Promo marzo", "start_date": "01/03/2024", "end_date": "2024-03-10",
	}, "catalogo.xlsx", catalogXLSX(t))
	req := httptest.NewRequest(http.MethodPost, "/api/events", body)
	req.Header.Set("Content-Type", ct)
	resp, raw := do(t, app, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	var ev dto.EventResponse
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func importSales(t *testing.T, app *fiber.App, csv string) dto.ImportSummary {
	t.Helper()
	body, ct := multipartBody(t, nil, "ventas.csv", []byte(csv))
	req := httptest.NewRequest(http.MethodPost, "/api/sales/import", body)
	req.Header.Set("Content-Type", ct)
	resp, raw := do(t, app, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	var sum dto.ImportSummary
	require.NoError(t, json.Unmarshal(raw, &sum))
	return sum
}

const salesCSV = "Sales Day,Layer1 Code,Barcode,Item Name,QTY,Amount(Tax excl.),Slip No.\n" +
	"02/03/2024,L1,111,Leche,2,100,T1\n" +
	"05/03/2024,L1,222,Té,1,50,T2\n" +
	"05/03/2024,L2,999,Otro,9,900,T3\n" +
	",L1,111,Leche,1,10,T4\n"

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t)
	resp, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"status":"ok"`)
}

func TestFlujoCompleto_EventoVentasReporte(t *testing.T) {
	app, _ := buildTestApp(t)

	ev := createEvent(t, app)
	assert.Equal(t, "2024-03-01", ev.StartDate)
	assert.Equal(t, 2, ev.ProductCount)

	sum := importSales(t, app, salesCSV)
	assert.Equal(t, 3, sum.Accepted)
	assert.Equal(t, 1, sum.Rejected)
	assert.Equal(t, int64(3), sum.Inserted)

	resp, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/api/events/"+ev.ID+"/report?date=2024-03-05", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var rep dto.ReportResponse
	require.NoError(t, json.Unmarshal(raw, &rep))
	assert.True(t, rep.HasData)
	assert.Equal(t, "150", rep.TotalRevenue.String())
	assert.Equal(t, "50", rep.DayRevenue.String())
	assert.Equal(t, 2, rep.TotalCustomers)
	require.Len(t, rep.TopByRevenue, 2)
	assert.Equal(t, "111", rep.TopByRevenue[0].Barcode)

	resp, raw = do(t, app, httptest.NewRequest(http.MethodGet, "/api/events/"+ev.ID+"/report.pdf", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestReporte_SinVentasDevuelveHasDataFalse(t *testing.T) {
	app, _ := buildTestApp(t)
	ev := createEvent(t, app)

	resp, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/api/events/"+ev.ID+"/report", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"has_data":false}`, string(raw))
}

func TestReporte_EventoInexistente(t *testing.T) {
	app, _ := buildTestApp(t)
	resp, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/api/events/nope/report", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), `"code":"NOT_FOUND"`)
}

func TestCrearEvento_Errores(t *testing.T) {
	app, _ := buildTestApp(t)
	createEvent(t, app)

	cases := []struct {
		name   string
		fields map[string]string
		file   []byte
		status int
		code   string
	}{
		{"duplicado", map[string]string{"name": "Promo marzo", "start_date": "2024-03-01", "end_date": "2024-03-10"}, catalogXLSX(t), fiber.StatusConflict, "DUPLICATE"},
		{"libro inválido", map[string]string{"name": "B", "start_date": "2024-03-01", "end_date": "2024-03-10"}, []byte("no xlsx"), fiber.StatusBadRequest, "FILE_FORMAT"},
		{"fechas invertidas", map[string]string{"name": "C", "start_date": "2024-03-11", "end_date": "2024-03-10"}, catalogXLSX(t), fiber.StatusBadRequest, "VALIDATION"},
		{"sin archivo", map[string]string{"name": "D", "start_date": "2024-03-01", "end_date": "2024-03-10"}, nil, fiber.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.fields, "c.xlsx", tc.file)
			req := httptest.NewRequest(http.MethodPost, "/api/events", body)
			req.Header.Set("Content-Type", ct)
			resp, raw := do(t, app, req)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			var e dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &e))
			assert.Equal(t, tc.code, e.Code)
		})
	}
}

func TestImportarVentas_ArchivoVacio(t *testing.T) {
	app, _ := buildTestApp(t)
	body, ct := multipartBody(t, nil, "vacio.csv", []byte(""))
	req := httptest.NewRequest(http.MethodPost, "/api/sales/import", body)
	req.Header.Set("Content-Type", ct)
	resp, raw := do(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "FILE_FORMAT")
}

func TestVentas_DiasYBorrado(t *testing.T) {
	app, sales := buildTestApp(t)
	importSales(t, app, salesCSV)

	resp, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/api/sales/days", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var days []dto.SalesDayDTO
	require.NoError(t, json.Unmarshal(raw, &days))
	assert.Equal(t, []dto.SalesDayDTO{{SalesDay: "2024-03-05", Records: 2}, {SalesDay: "2024-03-02", Records: 1}}, days)

	resp, raw = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/sales/2024-03-05", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":2}`, string(raw))
	assert.Len(t, sales.records, 1)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/sales/ayer", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, raw = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/sales", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":1}`, string(raw))
}

func TestVentas_ListadoPorLayer(t *testing.T) {
	app, _ := buildTestApp(t)
	importSales(t, app, salesCSV)

	resp, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/api/sales?layer=L2", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page dto.SalesListResponse
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "999", page.Items[0].Barcode)
	assert.Equal(t, 1, page.Page.Total)
}

func TestEventos_ListarYEliminar(t *testing.T) {
	app, _ := buildTestApp(t)
	ev := createEvent(t, app)

	resp, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/api/events/"+ev.ID, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.EventResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Len(t, got.Products, 2)

	resp, raw = do(t, app, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.EventListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list.Items, 1)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/events/"+ev.ID, nil))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/events/"+ev.ID, nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
