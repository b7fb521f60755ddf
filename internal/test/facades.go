package test

import (
	"context"
	"time"

	"github.com/polkiloo/laundry/internal/domain/model"
	"github.com/polkiloo/laundry/internal/pkg/optional"
)

// SampleOrder returns a populated order for handler tests.
func SampleOrder(code string) model.Order {
	ts := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)
	return model.Order{
		ID:           1,
		Code:         code,
		UserID:       1,
		DeliveryDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:       40,
		Weight:       8,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn        func(context.Context, model.OrderDraft) (*model.Order, error)
	OrdersFn        func(context.Context) ([]model.Order, error)
	OrderFn         func(context.Context, string) (*model.OrderDetails, error)
	UpdateFn        func(context.Context, string, model.OrderPatch) (*model.Order, error)
	PaymentFn       func(context.Context, string, optional.Value[bool]) (*model.Order, error)
	WashWeightFn    func(context.Context, string, optional.Value[float64]) (*model.Order, error)
	CustomerOrderFn func(context.Context, int64) ([]model.Order, error)
	UsersFn         func(context.Context) ([]model.User, error)
}

// CreateOrder delegates to provided function or returns a sample order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	order := SampleOrder("ABC123")
	return &order, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{SampleOrder("ABC123")}, nil
}

// Order returns order details for code.
func (s OrderFacadeStub) Order(ctx context.Context, code string) (*model.OrderDetails, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, code)
	}
	return &model.OrderDetails{Order: SampleOrder(code), OwnerName: "Ann", OwnerPhone: "555-0100"}, nil
}

// UpdateOrder applies the patch to a sample order.
func (s OrderFacadeStub) UpdateOrder(ctx context.Context, code string, patch model.OrderPatch) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, code, patch)
	}
	order := SampleOrder(code)
	order.Apply(patch.Normalize())
	return &order, nil
}

// UpdatePaymentStatus sets the payment flag on a sample order.
func (s OrderFacadeStub) UpdatePaymentStatus(ctx context.Context, code string, status optional.Value[bool]) (*model.Order, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, code, status)
	}
	order := SampleOrder(code)
	order.PaymentStatus = status.Value
	return &order, nil
}

// UpdateWashWeight sets the measured weight on a sample order.
func (s OrderFacadeStub) UpdateWashWeight(ctx context.Context, code string, weight optional.Value[float64]) (*model.Order, error) {
	if s.WashWeightFn != nil {
		return s.WashWeightFn(ctx, code, weight)
	}
	order := SampleOrder(code)
	order.WashWeight = &weight.Value
	return &order, nil
}

// CustomerOrders returns the caller's orders.
func (s OrderFacadeStub) CustomerOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.CustomerOrderFn != nil {
		return s.CustomerOrderFn(ctx, userID)
	}
	return []model.Order{}, nil
}

// Users returns the registered users.
func (s OrderFacadeStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return []model.User{{ID: 1, Name: "Ann", PhoneNumber: "555-0100", PasswordHash: "secret-hash", Role: model.RoleCustomer}}, nil
}

// HealthFacadeStub reports configured store health.
type HealthFacadeStub struct {
	HealthErr error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.HealthErr
}

// HealthCheckerStub counts storage pings.
type HealthCheckerStub struct {
	Err   error
	Calls int
}

// HealthCheck records the call and returns the configured error.
func (s *HealthCheckerStub) HealthCheck(context.Context) error {
	s.Calls++
	return s.Err
}
