package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/dto"
	apperrors "github.com/sebas-aldana/brm-backend/internal/errors"
)

type CheckoutService interface {
	ExecutePurchase(ctx context.Context, clientID int, reservations []dto.Reservation) (*domain.Invoice, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type InvoiceRepository interface {
	FindByPurchaseID(ctx context.Context, purchaseID uint) (*domain.Invoice, error)
	FindByClientID(ctx context.Context, clientID int) ([]domain.Invoice, error)
	FindAll(ctx context.Context) ([]domain.Invoice, error)
}

type SubmitPurchaseUseCase struct {
	checkoutSvc CheckoutService
	userRepo    UserRepository
	invoiceRepo InvoiceRepository
	logger      *zap.Logger
	maxItems    int
}

func NewSubmitPurchaseUseCase(
	checkoutSvc CheckoutService,
	userRepo UserRepository,
	invoiceRepo InvoiceRepository,
	logger *zap.Logger,
	maxItems int,
) *SubmitPurchaseUseCase {
	return &SubmitPurchaseUseCase{
		checkoutSvc: checkoutSvc,
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
		maxItems:    maxItems,
	}
}

func (uc *SubmitPurchaseUseCase) SubmitPurchase(
	ctx context.Context,
	clientID int,
	items []dto.PurchaseItem,
) (*domain.Invoice, error) {
	uc.logger.Info("purchase submitted", zap.Int("clientId", clientID), zap.Int("itemCount", len(items)))

	if len(items) == 0 {
		return nil, apperrors.NewValidationError("no items provided", apperrors.ValidationDetail{
			Field:   "items",
			Message: "at least one item is required",
		})
	}

	if uc.maxItems > 0 && len(items) > uc.maxItems {
		return nil, apperrors.NewValidationError("too many items", apperrors.ValidationDetail{
			Field:   "items",
			Message: fmt.Sprintf("items exceeds maximum of %d", uc.maxItems),
		})
	}

	for idx, item := range items {
		if item.ProductID <= 0 {
			return nil, apperrors.NewValidationError("invalid item", apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", idx),
				Message: "productId must be a positive integer",
			})
		}
		if item.Quantity <= 0 {
			return nil, apperrors.NewValidationError("invalid item", apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: fmt.Sprintf("quantity must be positive, got %d", item.Quantity),
			})
		}
	}

	// Pre-validation outside the transaction: the client must exist.
	if _, err := uc.userRepo.FindByID(ctx, clientID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("client with id %d not found", clientID))
		}
		return nil, err
	}

	reservations := mergeReservations(items)

	// Lock order is canonical across requests: ascending productId.
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].ProductID < reservations[j].ProductID
	})

	return uc.checkoutSvc.ExecutePurchase(ctx, clientID, reservations)
}

// mergeReservations sums quantities of repeated productIds so the stock
// check sees one combined reservation per product instead of racing its own
// earlier decrements.
func mergeReservations(items []dto.PurchaseItem) []dto.Reservation {
	byProduct := make(map[int]int, len(items))
	order := make([]int, 0, len(items))

	for _, item := range items {
		if _, seen := byProduct[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		byProduct[item.ProductID] += item.Quantity
	}

	reservations := make([]dto.Reservation, 0, len(order))
	for _, productID := range order {
		reservations = append(reservations, dto.Reservation{
			ProductID: productID,
			Quantity:  byProduct[productID],
		})
	}

	return reservations
}

// GetInvoice returns a committed purchase if the requester owns it or is an
// admin.
func (uc *SubmitPurchaseUseCase) GetInvoice(ctx context.Context, requester domain.User, purchaseID uint) (*domain.Invoice, error) {
	invoice, err := uc.invoiceRepo.FindByPurchaseID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if requester.Role != domain.RoleAdmin && requester.ID != invoice.ClientID {
		return nil, apperrors.NewForbiddenError("purchase belongs to another client")
	}

	return invoice, nil
}

// History lists purchases: all of them for admins, own only for clients.
func (uc *SubmitPurchaseUseCase) History(ctx context.Context, requester domain.User) ([]domain.Invoice, error) {
	if requester.Role == domain.RoleAdmin {
		return uc.invoiceRepo.FindAll(ctx)
	}
	return uc.invoiceRepo.FindByClientID(ctx, requester.ID)
}
