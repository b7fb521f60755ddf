package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/model"
	"github.com/polkiloo/laundry/internal/domain/repository"
	"github.com/polkiloo/laundry/internal/pkg/optional"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders         repository.OrderRepository
	users          repository.UserRepository
	codes          *CodeAllocator
	createAttempts int
	logger         *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, users repository.UserRepository, codes *CodeAllocator, createAttempts int, logger *slog.Logger) *OrderUseCase {
	if createAttempts < 1 {
		createAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{orders: orders, users: users, codes: codes, createAttempts: createAttempts, logger: logger}
}

// Create registers a new order for the customer identified by draft.OwnerPhone.
// A code collision on insert is retried with a fresh code.
func (u *OrderUseCase) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	owner, err := u.users.GetByPhone(ctx, strings.TrimSpace(draft.OwnerPhone))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no user with phone %s", domainErrors.ErrOwnerNotFound, draft.OwnerPhone)
		}
		return nil, storeError(err)
	}

	for attempt := 1; attempt <= u.createAttempts; attempt++ {
		code, err := u.codes.Allocate(ctx)
		if err != nil {
			if errors.Is(err, domainErrors.ErrAllocationExhausted) {
				u.logger.Error("order code allocation exhausted", slog.String("owner_phone", owner.PhoneNumber))
			}
			return nil, err
		}

		order := &model.Order{
			Code:           code,
			UserID:         owner.ID,
			CollectionDate: draft.CollectionDate,
			CollectionTime: draft.CollectionTime,
			DeliveryDate:   draft.DeliveryDate,
			DeliveryTime:   draft.DeliveryTime,
			Amount:         draft.Amount,
			Weight:         draft.Weight,
		}
		err = u.orders.Create(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, storeError(err)
		}
		u.logger.Warn("order code collision on insert",
			slog.String("code", code),
			slog.Int("attempt", attempt),
		)
	}

	u.logger.Error("order code allocation exhausted",
		slog.String("owner_phone", owner.PhoneNumber),
		slog.Int("attempts", u.createAttempts),
	)
	return nil, fmt.Errorf("%w: %d inserts collided", domainErrors.ErrAllocationExhausted, u.createAttempts)
}

// Update applies a sparse patch and returns the resulting order.
func (u *OrderUseCase) Update(ctx context.Context, code string, patch model.OrderPatch) (*model.Order, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	patch = patch.Normalize()
	if patch.IsEmpty() {
		order, err := u.orders.GetByCode(ctx, code)
		if err != nil {
			return nil, orderError(err, code)
		}
		return order, nil
	}

	order, err := u.orders.Update(ctx, code, patch)
	if err != nil {
		return nil, orderError(err, code)
	}
	return order, nil
}

// UpdatePaymentStatus sets the payment flag. The status must be provided.
func (u *OrderUseCase) UpdatePaymentStatus(ctx context.Context, code string, status optional.Value[bool]) (*model.Order, error) {
	if !status.Set {
		return nil, fmt.Errorf("%w: payment status is required", domainErrors.ErrValidation)
	}
	return u.Update(ctx, code, model.OrderPatch{PaymentStatus: status})
}

// UpdateWashWeight records the measured weight. The weight must be provided.
func (u *OrderUseCase) UpdateWashWeight(ctx context.Context, code string, weight optional.Value[float64]) (*model.Order, error) {
	if !weight.Set {
		return nil, fmt.Errorf("%w: wash weight is required", domainErrors.ErrValidation)
	}
	return u.Update(ctx, code, model.OrderPatch{WashWeight: weight})
}

// ListAll returns every order, newest first.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return orders, nil
}

// ListByOwner returns the orders owned by userID, newest first.
func (u *OrderUseCase) ListByOwner(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := u.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// GetByCode returns the order together with its owner's name and phone.
func (u *OrderUseCase) GetByCode(ctx context.Context, code string) (*model.OrderDetails, error) {
	order, err := u.orders.GetByCode(ctx, code)
	if err != nil {
		return nil, orderError(err, code)
	}

	owner, err := u.users.GetByID(ctx, order.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %s references user %d", domainErrors.ErrOwnerNotFound, code, order.UserID)
		}
		return nil, storeError(err)
	}

	return &model.OrderDetails{
		Order:      *order,
		OwnerName:  owner.Name,
		OwnerPhone: owner.PhoneNumber,
	}, nil
}

// ListUsers returns every registered user.
func (u *OrderUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

func orderError(err error, code string) error {
	if errors.Is(err, domainErrors.ErrNotFound) {
		return fmt.Errorf("%w: %s", domainErrors.ErrOrderNotFound, code)
	}
	return storeError(err)
}

func storeError(err error) error {
	if errors.Is(err, domainErrors.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err)
}
