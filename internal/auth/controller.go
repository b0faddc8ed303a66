package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	apperrors "github.com/sebas-aldana/brm-backend/internal/errors"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type Controller struct {
	service AuthService
	logger  *zap.Logger
}

func NewController(service AuthService, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, apperrors.NewValidationError("invalid JSON body"))
		return
	}

	if err := validateRegisterRequest(req); err != nil {
		c.writeError(w, err)
		return
	}

	user, err := c.service.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, RegisterResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, apperrors.NewValidationError("invalid JSON body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		c.writeError(w, apperrors.NewValidationError("email and password are required"))
		return
	}

	token, err := c.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func validateRegisterRequest(req RegisterRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if !strings.Contains(req.Email, "@") {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email must be valid"})
	}
	if len(req.Password) < 8 {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password must be at least 8 characters"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *Controller) writeError(w http.ResponseWriter, err error) {
	switch {
	case isValidation(err):
		ve, _ := apperrors.IsValidationError(err)
		c.writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": ve.Message,
			"details": ve.Details,
		})
	case isConflict(err):
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case isUnauthorized(err):
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
	default:
		c.logger.Error("unexpected error", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "an unexpected error occurred"})
	}
}

func isValidation(err error) bool {
	_, ok := apperrors.IsValidationError(err)
	return ok
}

func isConflict(err error) bool {
	_, ok := apperrors.IsConflictError(err)
	return ok
}

func isUnauthorized(err error) bool {
	_, ok := apperrors.IsUnauthorizedError(err)
	return ok
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
