package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/auth"
	"github.com/sebas-aldana/brm-backend/internal/config"
	"github.com/sebas-aldana/brm-backend/internal/infrastructure/logger"
	"github.com/sebas-aldana/brm-backend/internal/infrastructure/mysql"
	"github.com/sebas-aldana/brm-backend/internal/product"
	"github.com/sebas-aldana/brm-backend/internal/purchase"
	"github.com/sebas-aldana/brm-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	authModule := auth.NewModule(db, cfg, zapLogger)
	productCtrl := product.NewModule(db, zapLogger)
	purchaseCtrl := purchase.NewModule(db, cfg, authModule.UserRepo, zapLogger)

	router := server.NewRouter(db, authModule, productCtrl, purchaseCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
