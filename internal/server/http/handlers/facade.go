package handlers

import (
	"context"

	"github.com/polkiloo/laundry/internal/domain/model"
	pkgAuth "github.com/polkiloo/laundry/internal/pkg/auth"
	"github.com/polkiloo/laundry/internal/pkg/optional"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, phone, password string) (string, error)
	Authenticate(ctx context.Context, phone, password string) (string, error)
	ParseToken(token string) (pkgAuth.Identity, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, code string) (*model.OrderDetails, error)
	UpdateOrder(ctx context.Context, code string, patch model.OrderPatch) (*model.Order, error)
	UpdatePaymentStatus(ctx context.Context, code string, status optional.Value[bool]) (*model.Order, error)
	UpdateWashWeight(ctx context.Context, code string, weight optional.Value[float64]) (*model.Order, error)
	CustomerOrders(ctx context.Context, userID int64) ([]model.Order, error)
	Users(ctx context.Context) ([]model.User, error)
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// LaundryFacade aggregates the full set of operations used across handlers.
type LaundryFacade interface {
	AuthFacade
	OrderFacade
	HealthFacade
}
