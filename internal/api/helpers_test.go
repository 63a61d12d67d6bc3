package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/api/shared"
	"github.com/phrazzld/soroban-api/internal/domain"
	"github.com/phrazzld/soroban-api/internal/service"
	"github.com/phrazzld/soroban-api/internal/soroban"
	"github.com/phrazzld/soroban-api/internal/store"
	"github.com/phrazzld/soroban-api/internal/worksheet"
	"github.com/stretchr/testify/require"
)

const fixedSeed int64 = 42

// memWorksheetStore is an in-memory store.WorksheetStore.
type memWorksheetStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Worksheet
	order []uuid.UUID
}

func newMemWorksheetStore() *memWorksheetStore {
	return &memWorksheetStore{items: make(map[uuid.UUID]*domain.Worksheet)}
}

func (s *memWorksheetStore) Create(_ context.Context, w *domain.Worksheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[w.ID]; ok {
		return store.ErrWorksheetExists
	}
	s.items[w.ID] = w
	s.order = append(s.order, w.ID)
	return nil
}

func (s *memWorksheetStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.items[id]
	if !ok {
		return nil, store.ErrWorksheetNotFound
	}
	return w, nil
}

func (s *memWorksheetStore) List(_ context.Context, limit, offset int) ([]*domain.Worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Worksheet, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if w, ok := s.items[s.order[i]]; ok {
			out = append(out, w)
		}
	}
	return page(out, limit, offset), nil
}

func (s *memWorksheetStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return store.ErrWorksheetNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *memWorksheetStore) WithTx(*sql.Tx) store.WorksheetStore { return s }

// memChallengeStore is an in-memory store.ChallengeStore.
type memChallengeStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Challenge
}

func newMemChallengeStore() *memChallengeStore {
	return &memChallengeStore{items: make(map[uuid.UUID]*domain.Challenge)}
}

func (s *memChallengeStore) Create(_ context.Context, c *domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[c.ID]; ok {
		return store.ErrChallengeExists
	}
	s.items[c.ID] = c
	return nil
}

func (s *memChallengeStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return nil, store.ErrChallengeNotFound
	}
	return c, nil
}

func (s *memChallengeStore) List(_ context.Context, limit, offset int) ([]*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Challenge, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (s *memChallengeStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return store.ErrChallengeNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *memChallengeStore) WithTx(*sql.Tx) store.ChallengeStore { return s }

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func directTx(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

// newTestRouter wires real services over in-memory stores, with every
// handler drawing fixedSeed when a request omits the seed.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	gen := soroban.NewGenerator()
	builder := worksheet.NewBuilder(gen, worksheet.WithWorkers(2), worksheet.WithMaxProblems(50))

	worksheets, err := service.NewWorksheetService(newMemWorksheetStore(), directTx, gen, builder, nil)
	require.NoError(t, err)
	challenges, err := service.NewChallengeService(newMemChallengeStore(), directTx, gen, 1500, nil)
	require.NoError(t, err)

	seed := func() int64 { return fixedSeed }

	problems := NewProblemHandler(service.NewGeneratorService(gen, nil), nil)
	problems.newSeed = seed
	sheets := NewWorksheetHandler(worksheets, nil)
	sheets.newSeed = seed
	drills := NewChallengeHandler(challenges)
	drills.newSeed = seed

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/formulas", problems.ListFormulas)
		r.Post("/problems", problems.GenerateProblem)

		r.Post("/worksheets", sheets.CreateWorksheet)
		r.Get("/worksheets", sheets.ListWorksheets)
		r.Get("/worksheets/{id}", sheets.GetWorksheet)
		r.Get("/worksheets/{id}/print", sheets.PrintWorksheet)
		r.Delete("/worksheets/{id}", sheets.DeleteWorksheet)

		r.Post("/challenges", drills.CreateChallenge)
		r.Get("/challenges", drills.ListChallenges)
		r.Get("/challenges/{id}", drills.GetChallenge)
		r.Get("/challenges/{id}/ticks", drills.GetTicks)
		r.Post("/challenges/{id}/answers", drills.SubmitAnswer)
		r.Delete("/challenges/{id}", drills.DeleteChallenge)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(shared.SetTraceID(req.Context()))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// scenarioSettings is the seed-42 direct-bead configuration whose problem
// is 7, +2, -3, +3, -1, -7 = 1.
func scenarioSettings() map[string]any {
	return map[string]any{
		"formula_type":    "no-formula",
		"digit_count":     1,
		"operation_count": 5,
		"seed":            fixedSeed,
		"ensure_positive": true,
	}
}
