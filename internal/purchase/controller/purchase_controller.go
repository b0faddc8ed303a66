package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/auth"
	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/dto"
	apperrors "github.com/sebas-aldana/brm-backend/internal/errors"
)

type PurchaseUseCase interface {
	SubmitPurchase(ctx context.Context, clientID int, items []dto.PurchaseItem) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, requester domain.User, purchaseID uint) (*domain.Invoice, error)
	History(ctx context.Context, requester domain.User) ([]domain.Invoice, error)
}

type PurchaseController struct {
	useCase PurchaseUseCase
	logger  *zap.Logger
}

func NewPurchaseController(useCase PurchaseUseCase, logger *zap.Logger) *PurchaseController {
	return &PurchaseController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *PurchaseController) Submit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		c.writeErrorResponse(w, traceID, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", logger)
		return
	}

	var req dto.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	items := make([]dto.PurchaseItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = dto.PurchaseItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	invoice, err := c.useCase.SubmitPurchase(r.Context(), user.ID, items)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewInvoiceResponse(traceID, invoice))
}

func (c *PurchaseController) GetByID(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		c.writeErrorResponse(w, traceID, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", logger)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, traceID, "invalid purchase id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	invoice, err := c.useCase.GetInvoice(r.Context(), user, uint(id))
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewInvoiceResponse(traceID, invoice))
}

func (c *PurchaseController) History(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		c.writeErrorResponse(w, traceID, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", logger)
		return
	}

	invoices, err := c.useCase.History(r.Context(), user)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	responses := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, dto.NewInvoiceResponse(traceID, &invoices[i]))
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *PurchaseController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), logger)
		return
	}

	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		c.writeJSON(w, http.StatusConflict, insufficientStockResponse{
			TraceID:   traceID,
			Code:      "INSUFFICIENT_STOCK",
			Message:   err.Error(),
			ProductID: ise.ProductID,
			Available: ise.Available,
			Requested: ise.Requested,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusForbidden, "FORBIDDEN", err.Error(), logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "TRANSACTION_FAILED", "an unexpected error occurred", logger)
}

type errorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type insufficientStockResponse struct {
	TraceID   string    `json:"traceId"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	ProductID int       `json:"productId"`
	Available int       `json:"available"`
	Requested int       `json:"requested"`
	Timestamp time.Time `json:"timestamp"`
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *PurchaseController) writeErrorResponse(w http.ResponseWriter, traceID string, status int, code, message string, logger *zap.Logger) {
	c.writeJSON(w, status, errorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (c *PurchaseController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *PurchaseController) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
