package server

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/auth"
	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/product"
	purchasectrl "github.com/sebas-aldana/brm-backend/internal/purchase/controller"
)

func NewRouter(
	db *sql.DB,
	authModule *auth.Module,
	productCtrl *product.Controller,
	purchaseCtrl *purchasectrl.PurchaseController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler(db))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authModule.Controller.Register)
		r.Post("/login", authModule.Controller.Login)
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(authModule.Middleware.Authenticate)

		r.Get("/", productCtrl.List)
		r.Get("/{id}", productCtrl.Get)

		r.Group(func(r chi.Router) {
			r.Use(authModule.Middleware.RequireRole(domain.RoleAdmin))
			r.Post("/", productCtrl.Create)
			r.Put("/{id}", productCtrl.Update)
			r.Delete("/{id}", productCtrl.Delete)
		})
	})

	r.Route("/purchases", func(r chi.Router) {
		r.Use(authModule.Middleware.Authenticate)

		r.With(authModule.Middleware.RequireRole(domain.RoleClient)).Post("/", purchaseCtrl.Submit)
		r.Get("/history", purchaseCtrl.History)
		r.Get("/{id}", purchaseCtrl.GetByID)
		r.With(authModule.Middleware.RequireRole(domain.RoleAdmin)).Get("/", purchaseCtrl.History)
	})

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "db": "disconnected"})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "db": "connected"})
	}
}
