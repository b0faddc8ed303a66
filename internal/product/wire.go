package product

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLProductRepository(db)
	service := NewService(repo, logger)
	useCase := NewUseCase(service)

	return NewController(useCase, logger)
}
