package product

import (
	"context"

	"github.com/sebas-aldana/brm-backend/internal/domain"
)

type crudUseCase struct {
	service Service
}

func NewUseCase(service Service) UseCase {
	return &crudUseCase{service: service}
}

func toDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:                p.ID,
		Batch:             p.Batch,
		Name:              p.Name,
		Price:             p.Price,
		AvailableQuantity: p.AvailableQuantity,
		EntryDate:         p.EntryDate,
	}
}

func (uc *crudUseCase) Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	created, err := uc.service.Create(ctx, domain.Product{
		Batch:             req.Batch,
		Name:              req.Name,
		Price:             req.Price,
		AvailableQuantity: req.AvailableQuantity,
		EntryDate:         req.EntryDate,
	})
	if err != nil {
		return nil, err
	}

	dto := toDTO(*created)
	return &dto, nil
}

func (uc *crudUseCase) List(ctx context.Context) ([]ProductDTO, error) {
	products, err := uc.service.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toDTO(p))
	}
	return dtos, nil
}

func (uc *crudUseCase) Get(ctx context.Context, id int) (*ProductDTO, error) {
	p, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toDTO(*p)
	return &dto, nil
}

func (uc *crudUseCase) Update(ctx context.Context, id int, req UpdateProductRequest) (*ProductDTO, error) {
	current, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Batch != nil {
		current.Batch = *req.Batch
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Price != nil {
		current.Price = *req.Price
	}
	if req.AvailableQuantity != nil {
		current.AvailableQuantity = *req.AvailableQuantity
	}
	if req.EntryDate != nil {
		current.EntryDate = *req.EntryDate
	}

	updated, err := uc.service.Update(ctx, *current)
	if err != nil {
		return nil, err
	}

	dto := toDTO(*updated)
	return &dto, nil
}

func (uc *crudUseCase) Delete(ctx context.Context, id int) error {
	return uc.service.Delete(ctx, id)
}
