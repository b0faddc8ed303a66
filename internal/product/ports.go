package product

import (
	"context"

	"github.com/sebas-aldana/brm-backend/internal/domain"
)

type UseCase interface {
	Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	List(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id int) (*ProductDTO, error)
	Update(ctx context.Context, id int, req UpdateProductRequest) (*ProductDTO, error)
	Delete(ctx context.Context, id int) error
}

type Service interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
}

type Repository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, p domain.Product) (int, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int) error
}
