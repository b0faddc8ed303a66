package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/auth"
	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/dto"
	apperrors "github.com/sebas-aldana/brm-backend/internal/errors"
)

type mockPurchaseUseCase struct {
	SubmitPurchaseFunc func(ctx context.Context, clientID int, items []dto.PurchaseItem) (*domain.Invoice, error)
	GetInvoiceFunc     func(ctx context.Context, requester domain.User, purchaseID uint) (*domain.Invoice, error)
	HistoryFunc        func(ctx context.Context, requester domain.User) ([]domain.Invoice, error)
}

func (m *mockPurchaseUseCase) SubmitPurchase(ctx context.Context, clientID int, items []dto.PurchaseItem) (*domain.Invoice, error) {
	return m.SubmitPurchaseFunc(ctx, clientID, items)
}

func (m *mockPurchaseUseCase) GetInvoice(ctx context.Context, requester domain.User, purchaseID uint) (*domain.Invoice, error) {
	return m.GetInvoiceFunc(ctx, requester, purchaseID)
}

func (m *mockPurchaseUseCase) History(ctx context.Context, requester domain.User) ([]domain.Invoice, error) {
	return m.HistoryFunc(ctx, requester)
}

func newTestRouter(ctrl *PurchaseController) http.Handler {
	r := chi.NewRouter()
	r.Get("/purchases/{id}", ctrl.GetByID)
	return r
}

func submitRequest(body string, user *domain.User) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(body))
	if user != nil {
		req = req.WithContext(auth.WithUser(req.Context(), *user))
	}
	return req
}

func TestSubmit_Success(t *testing.T) {
	uc := &mockPurchaseUseCase{
		SubmitPurchaseFunc: func(ctx context.Context, clientID int, items []dto.PurchaseItem) (*domain.Invoice, error) {
			assert.Equal(t, 7, clientID)
			require.Len(t, items, 1)
			return &domain.Invoice{
				PurchaseID: 10,
				ClientID:   clientID,
				Total:      decimal.RequireFromString("15.00"),
				Items: []domain.InvoiceItem{
					{ProductID: 1, ProductName: "Widget", Quantity: 3, PriceAtPurchase: decimal.RequireFromString("5.00")},
				},
			}, nil
		},
	}

	ctrl := NewPurchaseController(uc, zap.NewNop())

	rec := httptest.NewRecorder()
	user := domain.User{ID: 7, Role: domain.RoleClient}
	ctrl.Submit(rec, submitRequest(`{"items":[{"productId":1,"quantity":3}]}`, &user))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(10), resp.PurchaseID)
	assert.NotEmpty(t, resp.TraceID)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Widget", resp.Items[0].ProductName)
}

func TestSubmit_NoAuthenticatedUser(t *testing.T) {
	ctrl := NewPurchaseController(&mockPurchaseUseCase{}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.Submit(rec, submitRequest(`{"items":[]}`, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmit_InvalidJSON(t *testing.T) {
	ctrl := NewPurchaseController(&mockPurchaseUseCase{}, zap.NewNop())

	rec := httptest.NewRecorder()
	user := domain.User{ID: 7, Role: domain.RoleClient}
	ctrl.Submit(rec, submitRequest(`{not json`, &user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmit_ValidationErrorMapsTo400(t *testing.T) {
	uc := &mockPurchaseUseCase{
		SubmitPurchaseFunc: func(ctx context.Context, clientID int, items []dto.PurchaseItem) (*domain.Invoice, error) {
			return nil, apperrors.NewValidationError("no items provided", apperrors.ValidationDetail{
				Field: "items", Message: "at least one item is required",
			})
		},
	}

	ctrl := NewPurchaseController(uc, zap.NewNop())

	rec := httptest.NewRecorder()
	user := domain.User{ID: 7, Role: domain.RoleClient}
	ctrl.Submit(rec, submitRequest(`{"items":[]}`, &user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestSubmit_InsufficientStockMapsTo409(t *testing.T) {
	uc := &mockPurchaseUseCase{
		SubmitPurchaseFunc: func(ctx context.Context, clientID int, items []dto.PurchaseItem) (*domain.Invoice, error) {
			return nil, apperrors.NewInsufficientStockError(1, 2, 5)
		},
	}

	ctrl := NewPurchaseController(uc, zap.NewNop())

	rec := httptest.NewRecorder()
	user := domain.User{ID: 7, Role: domain.RoleClient}
	ctrl.Submit(rec, submitRequest(`{"items":[{"productId":1,"quantity":5}]}`, &user))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp insufficientStockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Code)
	assert.Equal(t, 1, resp.ProductID)
	assert.Equal(t, 2, resp.Available)
	assert.Equal(t, 5, resp.Requested)
}

func TestSubmit_ProductNotFoundMapsTo404(t *testing.T) {
	uc := &mockPurchaseUseCase{
		SubmitPurchaseFunc: func(ctx context.Context, clientID int, items []dto.PurchaseItem) (*domain.Invoice, error) {
			return nil, apperrors.NewNotFoundError("product with id 9999 not found")
		},
	}

	ctrl := NewPurchaseController(uc, zap.NewNop())

	rec := httptest.NewRecorder()
	user := domain.User{ID: 7, Role: domain.RoleClient}
	ctrl.Submit(rec, submitRequest(`{"items":[{"productId":9999,"quantity":1}]}`, &user))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "9999")
}

func TestSubmit_InternalErrorMapsTo500Opaque(t *testing.T) {
	uc := &mockPurchaseUseCase{
		SubmitPurchaseFunc: func(ctx context.Context, clientID int, items []dto.PurchaseItem) (*domain.Invoice, error) {
			return nil, apperrors.NewInternalError("transaction failed", assert.AnError)
		},
	}

	ctrl := NewPurchaseController(uc, zap.NewNop())

	rec := httptest.NewRecorder()
	user := domain.User{ID: 7, Role: domain.RoleClient}
	ctrl.Submit(rec, submitRequest(`{"items":[{"productId":1,"quantity":1}]}`, &user))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error(),
		"internal causes must not leak to the caller")
}

func TestGetByID_InvalidID(t *testing.T) {
	ctrl := NewPurchaseController(&mockPurchaseUseCase{}, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/purchases/abc", nil)
	req = req.WithContext(auth.WithUser(req.Context(), domain.User{ID: 7, Role: domain.RoleClient}))

	ctrl.GetByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetByID_ForbiddenMapsTo403(t *testing.T) {
	uc := &mockPurchaseUseCase{
		GetInvoiceFunc: func(ctx context.Context, requester domain.User, purchaseID uint) (*domain.Invoice, error) {
			return nil, apperrors.NewForbiddenError("purchase belongs to another client")
		},
	}

	ctrl := NewPurchaseController(uc, zap.NewNop())

	router := newTestRouter(ctrl)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/purchases/10", nil)
	req = req.WithContext(auth.WithUser(req.Context(), domain.User{ID: 7, Role: domain.RoleClient}))

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHistory_ReturnsInvoices(t *testing.T) {
	uc := &mockPurchaseUseCase{
		HistoryFunc: func(ctx context.Context, requester domain.User) ([]domain.Invoice, error) {
			return []domain.Invoice{{PurchaseID: 1}, {PurchaseID: 2}}, nil
		},
	}

	ctrl := NewPurchaseController(uc, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/purchases/history", nil)
	req = req.WithContext(auth.WithUser(req.Context(), domain.User{ID: 7, Role: domain.RoleClient}))

	ctrl.History(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
