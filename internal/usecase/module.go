package usecase

import (
	"crypto/rand"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/laundry/internal/config"
	"github.com/polkiloo/laundry/internal/domain/repository"
	"github.com/polkiloo/laundry/internal/pkg/ordercode"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	newCodeAllocator,
	newOrderUseCase,
)

func newCodeAllocator(orders repository.OrderRepository, cfg *config.Config) *CodeAllocator {
	generate := func() (string, error) { return ordercode.Generate(rand.Reader) }
	return NewCodeAllocator(orders, generate, cfg.CodeCheckAttempts)
}

type orderParams struct {
	fx.In

	Orders repository.OrderRepository
	Users  repository.UserRepository
	Codes  *CodeAllocator
	Config *config.Config
	Logger *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Users, p.Codes, p.Config.CreateAttempts, p.Logger)
}
