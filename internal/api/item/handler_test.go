package item_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gopantry/internal/api/item"
	"gopantry/internal/domain"
	"gopantry/internal/pkg/export"
	"gopantry/internal/pkg/logger"
	"gopantry/internal/service/itemservice"
	"gopantry/internal/store/itemstore"
)

// MockItemRepository é uma implementação mock do Persistence Adapter.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Insert(ctx context.Context, it domain.Item) (domain.Item, error) {
	args := m.Called(ctx, it)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemRepository) SelectAll(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateQuantity(ctx context.Context, id string, quantity float64, updatedAt time.Time) error {
	return m.Called(ctx, id, quantity, updatedAt).Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type fixture struct {
	router http.Handler
	repo   *MockItemRepository
	drafts *item.RestockDrafts
}

// newFixture monta o handler sobre um serviço real com o estoque já carregado.
func newFixture(t *testing.T, initial []domain.Item, load bool) *fixture {
	t.Helper()
	repo := new(MockItemRepository)
	svc := itemservice.NewService(itemstore.New(), repo, logger.NewNopLogger())
	if load {
		repo.On("SelectAll", mock.Anything).Return(initial, nil).Once()
		require.NoError(t, svc.Load(context.Background()))
	}

	drafts := item.NewRestockDrafts()
	h := item.NewHandler(svc, drafts, logger.NewNopLogger())

	r := chi.NewRouter()
	r.Get("/v1/units", h.ListUnitsHandler)
	r.Get("/v1/items", h.ListItemsHandler)
	r.Get("/v1/items/export", h.ExportItemsHandler)
	r.Get("/v1/items/{id}", h.GetItemHandler)
	r.Post("/v1/items", h.CreateItemHandler)
	r.Post("/v1/items/{id}/consume", h.ConsumeItemHandler)
	r.Put("/v1/items/{id}/restock-draft", h.SetRestockDraftHandler)
	r.Post("/v1/items/{id}/restock", h.RestockItemHandler)
	r.Put("/v1/items/{id}/quantity", h.SetQuantityHandler)
	r.Post("/v1/items/{id}/sync", h.SyncItemHandler)
	r.Delete("/v1/items/{id}", h.DeleteItemHandler)

	return &fixture{router: r, repo: repo, drafts: drafts}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeOutcome(t *testing.T, rec *httptest.ResponseRecorder) domain.OutcomeResponse {
	t.Helper()
	var out domain.OutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var out domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

var tomatoes = domain.Item{ID: "tom", Name: "Tomatoes", Quantity: 12, Unit: "pieces", LowStockThreshold: 5, LastUpdated: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)}

func TestCreateItemHandler(t *testing.T) {
	f := newFixture(t, nil, true)
	f.repo.On("Insert", mock.Anything, mock.AnythingOfType("domain.Item")).
		Return(domain.Item{}, nil).Once()

	rec := f.do(t, http.MethodPost, "/v1/items", `{"name":"  Olive Oil ","quantity":"2.5","unit":"liters","low_stock_threshold":""}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	out := decodeOutcome(t, rec)
	assert.Equal(t, "Olive Oil has been added to inventory.", out.Message)
	require.NotNil(t, out.Item)
	assert.Equal(t, 2.5, out.Item.Quantity)
	assert.Equal(t, domain.DefaultLowStockThreshold, out.Item.LowStockThreshold)
	assert.Equal(t, domain.StatusLow, out.Item.Status)
	assert.NotEmpty(t, out.Item.ID)
}

func TestCreateItemHandler_Validation(t *testing.T) {
	f := newFixture(t, nil, true)

	tests := []struct {
		name string
		body string
	}{
		{"json malformado", `{"name":`},
		{"nome vazio", `{"name":"   ","quantity":"1","unit":"kg"}`},
		{"sem unidade", `{"name":"Salt","quantity":"1","unit":""}`},
		{"quantidade negativa", `{"name":"Salt","quantity":"-1","unit":"kg"}`},
		{"quantidade ilegível", `{"name":"Salt","quantity":"abc","unit":"kg"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/v1/items", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Category)
		})
	}
	f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestListAndGetItemHandlers(t *testing.T) {
	f := newFixture(t, []domain.Item{tomatoes}, true)

	rec := f.do(t, http.MethodGet, "/v1/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []domain.ItemView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "In Stock", items[0].StatusLabel)

	rec = f.do(t, http.MethodGet, "/v1/items/tom", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/items/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConsumeItemHandler(t *testing.T) {
	empty := domain.Item{ID: "salt", Name: "Salt", Quantity: 0, Unit: "kg", LowStockThreshold: 0.5, LastUpdated: tomatoes.LastUpdated}
	f := newFixture(t, []domain.Item{tomatoes, empty}, true)
	f.repo.On("UpdateQuantity", mock.Anything, "tom", 11.0, mock.Anything).Return(nil).Once()

	rec := f.do(t, http.MethodPost, "/v1/items/tom/consume", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeOutcome(t, rec)
	assert.Equal(t, "Used 1 pieces of Tomatoes", out.Message)
	assert.Equal(t, 11.0, out.Item.Quantity)

	rec = f.do(t, http.MethodPost, "/v1/items/salt/consume", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "PRECONDITION_FAILED", decodeError(t, rec).Category)
}

func TestRestockItemHandler_UsesDraftThenDefault(t *testing.T) {
	f := newFixture(t, []domain.Item{tomatoes}, true)
	f.repo.On("UpdateQuantity", mock.Anything, "tom", 14.5, mock.Anything).Return(nil).Once()
	f.repo.On("UpdateQuantity", mock.Anything, "tom", 15.5, mock.Anything).Return(nil).Once()

	rec := f.do(t, http.MethodPut, "/v1/items/tom/restock-draft", `{"amount":"2.5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.5", f.drafts.Get("tom"))

	rec = f.do(t, http.MethodPost, "/v1/items/tom/restock", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Restocked 2.5 pieces of Tomatoes", decodeOutcome(t, rec).Message)
	assert.Equal(t, item.DefaultRestockAmount, f.drafts.Get("tom"), "rascunho limpo após reposição")

	rec = f.do(t, http.MethodPost, "/v1/items/tom/restock", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15.5, decodeOutcome(t, rec).Item.Quantity)
	f.repo.AssertExpectations(t)
}

func TestRestockItemHandler_RejectsNonPositive(t *testing.T) {
	f := newFixture(t, []domain.Item{tomatoes}, true)
	f.drafts.Set("tom", "0")

	rec := f.do(t, http.MethodPost, "/v1/items/tom/restock", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "0", f.drafts.Get("tom"), "rascunho mantido quando a reposição falha")

	rec = f.do(t, http.MethodPost, "/v1/items/tom/restock", `{"amount":-3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.repo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetQuantityHandler_AdapterFailureKeepsMutation(t *testing.T) {
	f := newFixture(t, []domain.Item{tomatoes}, true)
	f.repo.On("UpdateQuantity", mock.Anything, "tom", 0.0, mock.Anything).Return(errors.New("connection reset")).Once()

	rec := f.do(t, http.MethodPut, "/v1/items/tom/quantity", `{"quantity":"0"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	out := decodeOutcome(t, rec)
	assert.Equal(t, "ADAPTER_ERROR", out.Category)
	require.NotNil(t, out.Item)
	assert.Equal(t, domain.StatusOutOfStock, out.Item.Status)
	assert.True(t, strings.HasPrefix(out.Message, "Tomatoes set to 0 pieces"))

	rec = f.do(t, http.MethodGet, "/v1/items/tom", "")
	var view domain.ItemView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 0.0, view.Quantity)

	f.repo.On("UpdateQuantity", mock.Anything, "tom", 0.0, mock.Anything).Return(nil).Once()
	rec = f.do(t, http.MethodPost, "/v1/items/tom/sync", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteItemHandler(t *testing.T) {
	f := newFixture(t, []domain.Item{tomatoes}, true)
	f.repo.On("Delete", mock.Anything, "tom").Return(nil).Once()
	f.drafts.Set("tom", "3")

	rec := f.do(t, http.MethodDelete, "/v1/items/tom", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tomatoes removed from inventory", decodeOutcome(t, rec).Message)
	assert.Equal(t, item.DefaultRestockAmount, f.drafts.Get("tom"))

	rec = f.do(t, http.MethodDelete, "/v1/items/tom", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlers_NotReady(t *testing.T) {
	f := newFixture(t, nil, false)

	rec := f.do(t, http.MethodGet, "/v1/items", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", decodeError(t, rec).Category)

	rec = f.do(t, http.MethodPost, "/v1/items", `{"name":"Salt","quantity":"1","unit":"kg"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExportItemsHandler(t *testing.T) {
	f := newFixture(t, []domain.Item{tomatoes}, true)

	rec := f.do(t, http.MethodGet, "/v1/items/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pantry_")
	assert.NotZero(t, rec.Body.Len())
}

func TestListUnitsHandler(t *testing.T) {
	f := newFixture(t, nil, false)

	rec := f.do(t, http.MethodGet, "/v1/units", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out item.UnitsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, domain.SuggestedUnits, out.Units)
	assert.Equal(t, domain.CustomUnit, out.Custom)
}
