package purchase

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/auth"
	"github.com/sebas-aldana/brm-backend/internal/config"
	productrepo "github.com/sebas-aldana/brm-backend/internal/product/repository"
	"github.com/sebas-aldana/brm-backend/internal/purchase/controller"
	purchaserepo "github.com/sebas-aldana/brm-backend/internal/purchase/repository"
	"github.com/sebas-aldana/brm-backend/internal/purchase/service"
	"github.com/sebas-aldana/brm-backend/internal/purchase/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, userRepo auth.UserRepository, logger *zap.Logger) *controller.PurchaseController {
	productRepo := productrepo.NewMySQLProductRepository(db)
	purchaseRepo := purchaserepo.NewMySQLPurchaseRepository(db)
	lineItemRepo := purchaserepo.NewMySQLLineItemRepository(db)
	invoiceRepo := purchaserepo.NewMySQLInvoiceRepository(db)

	checkoutSvc := service.NewCheckoutService(
		db,
		productRepo,
		purchaseRepo,
		lineItemRepo,
		invoiceRepo,
		logger,
		cfg.Purchase.TxTimeout,
	)

	submitUC := usecase.NewSubmitPurchaseUseCase(
		checkoutSvc,
		userRepo,
		invoiceRepo,
		logger,
		cfg.Purchase.MaxItems,
	)

	return controller.NewPurchaseController(submitUC, logger)
}
