package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/auth/repository"
	"github.com/sebas-aldana/brm-backend/internal/config"
)

type Module struct {
	Controller *Controller
	Middleware *Middleware
	UserRepo   UserRepository
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	userRepo := repository.NewMySQLUserRepository(db)
	service := NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)

	return &Module{
		Controller: NewController(service, logger),
		Middleware: NewMiddleware(service, logger),
		UserRepo:   userRepo,
	}
}
