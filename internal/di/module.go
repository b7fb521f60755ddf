package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/laundry/internal/app"
	"github.com/polkiloo/laundry/internal/config"
	"github.com/polkiloo/laundry/internal/logger"
	"github.com/polkiloo/laundry/internal/pkg/auth"
	"github.com/polkiloo/laundry/internal/server/http/handlers"
	"github.com/polkiloo/laundry/internal/server/http/router"
	"github.com/polkiloo/laundry/internal/storage/postgres"
	"github.com/polkiloo/laundry/internal/usecase"
)

// Module assembles the application graph. opts are appended last so tests
// can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.LaundryFacade) handlers.LaundryFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
