package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/dto"
	apperrors "github.com/sebas-aldana/brm-backend/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, productID int) (*domain.Product, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, productID int, quantity int) error
}

type PurchaseRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, clientID int, total decimal.Decimal) (uint, error)
}

type LineItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.PurchaseLineItem) (uint, error)
}

type InvoiceAssembler interface {
	FindByPurchaseID(ctx context.Context, purchaseID uint) (*domain.Invoice, error)
}

// CheckoutService runs one purchase as a single database transaction:
// lock product rows in ascending productId order, verify stock, capture the
// price snapshot, decrement, persist the purchase with its line items, and
// commit. Every non-commit exit path rolls back before returning.
type CheckoutService struct {
	db           TransactionManager
	productRepo  ProductRepository
	purchaseRepo PurchaseRepository
	lineItemRepo LineItemRepository
	invoiceRepo  InvoiceAssembler
	logger       *zap.Logger
	txTimeout    time.Duration
}

func NewCheckoutService(
	db TransactionManager,
	productRepo ProductRepository,
	purchaseRepo PurchaseRepository,
	lineItemRepo LineItemRepository,
	invoiceRepo InvoiceAssembler,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		db:           db,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		lineItemRepo: lineItemRepo,
		invoiceRepo:  invoiceRepo,
		logger:       logger,
		txTimeout:    txTimeout,
	}
}

type stagedLine struct {
	productID       int
	quantity        int
	priceAtPurchase decimal.Decimal
}

// ExecutePurchase expects reservations already merged per product and sorted
// ascending by productId; locking in that canonical order keeps concurrent
// purchases over overlapping product sets deadlock-free.
func (s *CheckoutService) ExecutePurchase(
	ctx context.Context,
	clientID int,
	reservations []dto.Reservation,
) (*domain.Invoice, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, apperrors.NewInternalError("transaction failed", err)
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	total := decimal.Zero
	staged := make([]stagedLine, 0, len(reservations))

	for _, res := range reservations {
		product, err := s.productRepo.FindByIDForUpdate(txCtx, tx, res.ProductID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				s.logger.Warn("product not found", zap.Int("clientId", clientID), zap.Int("productId", res.ProductID))
				return nil, err
			}
			s.logger.Error("locked read failed", zap.Int("productId", res.ProductID), zap.Error(err))
			return nil, apperrors.NewInternalError("transaction failed", err)
		}

		if !product.HasStockFor(res.Quantity) {
			s.logger.Warn("insufficient stock",
				zap.Int("clientId", clientID),
				zap.Int("productId", res.ProductID),
				zap.Int("available", product.AvailableQuantity),
				zap.Int("requested", res.Quantity),
			)
			return nil, apperrors.NewInsufficientStockError(res.ProductID, product.AvailableQuantity, res.Quantity)
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(res.Quantity))))
		staged = append(staged, stagedLine{
			productID:       res.ProductID,
			quantity:        res.Quantity,
			priceAtPurchase: product.Price,
		})
	}

	for _, line := range staged {
		if err := s.productRepo.DecrementStock(txCtx, tx, line.productID, line.quantity); err != nil {
			s.logger.Error("stock decrement failed", zap.Int("productId", line.productID), zap.Error(err))
			if _, ok := apperrors.IsInternalError(err); ok {
				return nil, err
			}
			return nil, apperrors.NewInternalError("transaction failed", err)
		}
	}

	purchaseID, err := s.purchaseRepo.Insert(txCtx, tx, clientID, total)
	if err != nil {
		s.logger.Error("failed to insert purchase", zap.Int("clientId", clientID), zap.Error(err))
		return nil, apperrors.NewInternalError("transaction failed", err)
	}

	for _, line := range staged {
		item := domain.PurchaseLineItem{
			PurchaseID:      purchaseID,
			ProductID:       line.productID,
			Quantity:        line.quantity,
			PriceAtPurchase: line.priceAtPurchase,
		}
		if _, err := s.lineItemRepo.Insert(txCtx, tx, item); err != nil {
			s.logger.Error("failed to insert line item",
				zap.Uint("purchaseId", purchaseID),
				zap.Int("productId", line.productID),
				zap.Error(err),
			)
			return nil, apperrors.NewInternalError("transaction failed", err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Int("clientId", clientID), zap.Error(err))
		return nil, apperrors.NewInternalError("transaction failed", err)
	}

	s.logger.Info("purchase committed",
		zap.Uint("purchaseId", purchaseID),
		zap.Int("clientId", clientID),
		zap.Int("itemCount", len(staged)),
		zap.String("total", total.String()),
	)

	// Read after commit; the rows are durable, so a miss here is a fault.
	invoice, err := s.invoiceRepo.FindByPurchaseID(ctx, purchaseID)
	if err != nil {
		s.logger.Error("failed to assemble invoice", zap.Uint("purchaseId", purchaseID), zap.Error(err))
		return nil, apperrors.NewInternalError("invoice assembly failed after commit", err)
	}

	return invoice, nil
}
