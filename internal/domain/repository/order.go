package repository

import (
	"context"

	"github.com/polkiloo/laundry/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Create returns errors.ErrAlreadyExists when order.Code is taken. GetByCode
// and Update return errors.ErrNotFound when no order has the code.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CodeExists(ctx context.Context, code string) (bool, error)
	GetByCode(ctx context.Context, code string) (*model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	Update(ctx context.Context, code string, patch model.OrderPatch) (*model.Order, error)
}
