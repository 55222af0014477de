package usecase_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/domain/entity"
	"github.com/jhoicas/promo-tracker/internal/domain/promo"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memEvents struct {
	mu     sync.Mutex
	events []*entity.Event
	err    error
}

func (m *memEvents) Create(_ context.Context, e *entity.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.events {
		if x.Name == e.Name && x.StartDate == e.StartDate {
			return domain.ErrDuplicate
		}
	}
	cp := *e
	m.events = append(m.events, &cp)
	return nil
}

func (m *memEvents) GetByID(_ context.Context, id string) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
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
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memEvents) List(_ context.Context) ([]*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Event, 0, len(m.events))
	for _, e := range m.events {
		cp := *e
		cp.Products = nil
		out = append(out, &cp)
	}
	return out, nil
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
	nextID  int64
	failErr error
}

func (m *memSales) InsertBatch(_ context.Context, recs []entity.SaleRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	for _, r := range recs {
		m.nextID++
		r.ID = m.nextID
		m.records = append(m.records, r)
	}
	return int64(len(recs)), nil
}

func (m *memSales) All(_ context.Context) ([]entity.SaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.SaleRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memSales) List(_ context.Context, f repository.SaleFilter) ([]entity.SaleRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []entity.SaleRecord
	search := strings.ToLower(f.Search)
	for _, r := range m.records {
		if f.Layer != "" && r.Layer1Code != f.Layer {
			continue
		}
		if search != "" && !strings.Contains(r.Barcode, f.Search) && !strings.Contains(strings.ToLower(r.ItemName), search) {
			continue
		}
		matched = append(matched, r)
	}
	total := len(matched)
	if f.Offset >= len(matched) {
		return []entity.SaleRecord{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (m *memSales) Layers(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := map[string]struct{}{}
	for _, r := range m.records {
		if r.Layer1Code != "" {
			set[r.Layer1Code] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memSales) Days(_ context.Context) ([]entity.SalesDaySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, r := range m.records {
		counts[r.SalesDay]++
	}
	out := make([]entity.SalesDaySummary, 0, len(counts))
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
	kept := m.records[:0]
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

// memTx ejecuta fn directamente sobre los repos en memoria (sin rollback).
type memTx struct {
	events *memEvents
	sales  *memSales
}

func (t memTx) Run(_ context.Context, fn func(repository.EventRepository, repository.SaleRepository) error) error {
	return fn(t.events, t.sales)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fuentes de archivos
// ──────────────────────────────────────────────────────────────────────────────

type stubCatalog struct {
	products []entity.EventProduct
	err      error
}

func (s stubCatalog) Extract([]byte) ([]entity.EventProduct, error) {
	return s.products, s.err
}

type stubSales struct {
	rows []promo.Row
	err  error
}

func (s stubSales) ReadRows(io.Reader) ([]promo.Row, error) {
	return s.rows, s.err
}

type stubRenderer struct {
	got *dto.ReportResponse
}

func (s *stubRenderer) RenderReport(r *dto.ReportResponse) ([]byte, error) {
	s.got = r
	return []byte("%PDF-1.4"), nil
}

var errBoom = errors.New("boom")
