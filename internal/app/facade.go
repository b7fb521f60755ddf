package app

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/laundry/internal/domain/errors"
	"github.com/polkiloo/laundry/internal/domain/model"
	pkgAuth "github.com/polkiloo/laundry/internal/pkg/auth"
	"github.com/polkiloo/laundry/internal/pkg/optional"
	"github.com/polkiloo/laundry/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type LaundryFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	health HealthChecker
}

func NewLaundryFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, health HealthChecker) *LaundryFacade {
	return &LaundryFacade{auth: auth, orders: orders, health: health}
}

func (f *LaundryFacade) Register(ctx context.Context, name, phone, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, name, phone, password)
	return token, err
}

func (f *LaundryFacade) Authenticate(ctx context.Context, phone, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, phone, password)
	return token, err
}

func (f *LaundryFacade) ParseToken(token string) (pkgAuth.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *LaundryFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.Profile(ctx, userID)
}

func (f *LaundryFacade) EnsureAdmin(ctx context.Context, name, phone, password string) (*model.User, error) {
	return f.auth.EnsureAdmin(ctx, name, phone, password)
}

func (f *LaundryFacade) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	return f.orders.Create(ctx, draft)
}

func (f *LaundryFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *LaundryFacade) Order(ctx context.Context, code string) (*model.OrderDetails, error) {
	return f.orders.GetByCode(ctx, code)
}

func (f *LaundryFacade) UpdateOrder(ctx context.Context, code string, patch model.OrderPatch) (*model.Order, error) {
	return f.orders.Update(ctx, code, patch)
}

func (f *LaundryFacade) UpdatePaymentStatus(ctx context.Context, code string, status optional.Value[bool]) (*model.Order, error) {
	return f.orders.UpdatePaymentStatus(ctx, code, status)
}

func (f *LaundryFacade) UpdateWashWeight(ctx context.Context, code string, weight optional.Value[float64]) (*model.Order, error) {
	return f.orders.UpdateWashWeight(ctx, code, weight)
}

func (f *LaundryFacade) CustomerOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByOwner(ctx, userID)
}

func (f *LaundryFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.orders.ListUsers(ctx)
}

func (f *LaundryFacade) Health(ctx context.Context) error {
	if err := f.health.HealthCheck(ctx); err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err)
	}
	return nil
}
