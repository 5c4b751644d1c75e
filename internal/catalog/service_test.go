package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushi-salon/salon/internal/shared"
	_ "github.com/rushi-salon/salon/testing"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	services map[string]*Service
	nextID   int

	createErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{services: make(map[string]*Service)}
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Service, error) {
	svc, ok := m.services[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *svc
	return &cp, nil
}

func (m *mockRepository) List(ctx context.Context, req ListServicesRequest) ([]Service, error) {
	var out []Service
	for _, svc := range m.services {
		if req.Search != "" && !strings.Contains(strings.ToLower(svc.Name), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockRepository) Create(ctx context.Context, svc Service) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.nextID++
	svc.ID = fmt.Sprintf("svc-%d", m.nextID)
	m.services[svc.ID] = &svc
	return svc.ID, nil
}

func (m *mockRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	svc, ok := m.services[id]
	if !ok {
		return shared.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		svc.Name = v.(string)
	}
	if v, ok := updates["price"]; ok {
		svc.Price = v.(decimal.Decimal)
	}
	if v, ok := updates["description"]; ok {
		svc.Description = v.(string)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.services[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *mockRepository) Count(ctx context.Context) (int, error) {
	return len(m.services), nil
}

func priceOf(v string) *decimal.Decimal {
	p := decimal.RequireFromString(v)
	return &p
}

func newTestManager(repo Repository) *Manager {
	m := NewManager(repo)
	m.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return m
}

// ============================================================================
// MANAGER TESTS
// ============================================================================

func TestManager_Create(t *testing.T) {
	repo := newMockRepository()
	m := newTestManager(repo)

	svc, err := m.Create(context.Background(), CreateServiceRequest{
		Name:        "  Haircut ",
		Price:       priceOf("500"),
		Description: "Professional haircut",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)
	assert.Equal(t, "Haircut", svc.Name)
	assert.True(t, svc.Price.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), svc.CreatedAt)
}

func TestManager_Create_Validation(t *testing.T) {
	m := newTestManager(newMockRepository())

	_, err := m.Create(context.Background(), CreateServiceRequest{Name: "", Price: priceOf("10")})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "name is required")

	_, err = m.Create(context.Background(), CreateServiceRequest{Name: "Trim", Price: priceOf("-1")})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "price must not be negative")

	var req CreateServiceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Haircut"}`), &req))
	_, err = m.Create(context.Background(), req)
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "price is required")
}

func TestManager_Create_RoundsPriceToStoredScale(t *testing.T) {
	repo := newMockRepository()
	m := newTestManager(repo)

	svc, err := m.Create(context.Background(), CreateServiceRequest{Name: "Trim", Price: priceOf("12.345")})
	require.NoError(t, err)
	assert.Equal(t, "12.35", svc.Price.String())
	assert.Equal(t, "12.35", repo.services[svc.ID].Price.String())
}

func TestManager_Update_RequiresPrice(t *testing.T) {
	repo := newMockRepository()
	m := newTestManager(repo)
	svc, err := m.Create(context.Background(), CreateServiceRequest{Name: "Haircut", Price: priceOf("500")})
	require.NoError(t, err)

	_, err = m.Update(context.Background(), svc.ID, UpdateServiceRequest{Name: "Haircut"})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "price is required")
	assert.Equal(t, "500", repo.services[svc.ID].Price.String())
}

func TestManager_Create_StoreUnavailable(t *testing.T) {
	repo := newMockRepository()
	repo.createErr = fmt.Errorf("%w: dial tcp", shared.ErrStoreUnavailable)
	m := newTestManager(repo)

	_, err := m.Create(context.Background(), CreateServiceRequest{Name: "Trim", Price: priceOf("0")})
	require.ErrorIs(t, err, shared.ErrStoreUnavailable)
}

func TestManager_Update(t *testing.T) {
	repo := newMockRepository()
	m := newTestManager(repo)
	svc, err := m.Create(context.Background(), CreateServiceRequest{Name: "Haircut", Price: priceOf("500")})
	require.NoError(t, err)

	updated, err := m.Update(context.Background(), svc.ID, UpdateServiceRequest{
		Name:  "Haircut Deluxe",
		Price: priceOf("600"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Haircut Deluxe", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(600)))
}

func TestManager_Update_NotFound(t *testing.T) {
	m := newTestManager(newMockRepository())
	_, err := m.Update(context.Background(), "missing", UpdateServiceRequest{Name: "X", Price: priceOf("0")})
	require.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestManager_Delete(t *testing.T) {
	repo := newMockRepository()
	m := newTestManager(repo)
	svc, err := m.Create(context.Background(), CreateServiceRequest{Name: "Haircut", Price: priceOf("500")})
	require.NoError(t, err)

	require.NoError(t, m.Delete(context.Background(), svc.ID))
	_, err = m.Get(context.Background(), svc.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.ErrorIs(t, m.Delete(context.Background(), svc.ID), shared.ErrNotFound)
}

// ============================================================================
// HANDLER TESTS
// ============================================================================

func newTestRouter(m *Manager) http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), m)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestHandler_CreateAndList(t *testing.T) {
	router := newTestRouter(newTestManager(newMockRepository()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/services",
		strings.NewReader(`{"name":"Haircut","price":500,"description":"Professional haircut"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"price":"500"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services?search=hair", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Haircut")
}

func TestHandler_CreateRejectsNegativePrice(t *testing.T) {
	router := newTestRouter(newTestManager(newMockRepository()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/services",
		strings.NewReader(`{"name":"Haircut","price":-5}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateRejectsMissingPrice(t *testing.T) {
	repo := newMockRepository()
	router := newTestRouter(newTestManager(repo))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/services",
		strings.NewReader(`{"name":"Haircut"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "price is required")
	assert.Empty(t, repo.services)
}

func TestHandler_ShowMissing(t *testing.T) {
	router := newTestRouter(newTestManager(newMockRepository()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
