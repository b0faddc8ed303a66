package product

import (
	"context"

	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	apperrors "github.com/sebas-aldana/brm-backend/internal/errors"
)

type productsService struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &productsService{repo: repo, logger: logger}
}

func (s *productsService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Price.IsNegative() {
		return nil, apperrors.NewValidationError("price must be non-negative", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}
	if p.AvailableQuantity < 0 {
		return nil, apperrors.NewValidationError("availableQuantity must be non-negative", apperrors.ValidationDetail{
			Field:   "availableQuantity",
			Message: "availableQuantity must be non-negative",
		})
	}

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Int("productId", id), zap.String("name", p.Name))
	return s.repo.FindByID(ctx, id)
}

func (s *productsService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *productsService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productsService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Price.IsNegative() || p.AvailableQuantity < 0 {
		return nil, apperrors.NewValidationError("price and availableQuantity must be non-negative")
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.Int("productId", p.ID))
	return s.repo.FindByID(ctx, p.ID)
}

func (s *productsService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.Int("productId", id))
	return nil
}
