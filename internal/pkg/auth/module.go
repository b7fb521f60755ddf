package auth

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/laundry/internal/config"
)

// Module provides the password hasher and the token strategy.
var Module = fx.Provide(
	newPasswordHasher,
	newTokenStrategy,
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger `optional:"true"`
}

func newTokenStrategy(p strategyParams) Strategy {
	if p.Config.DefaultSecret() && p.Logger != nil {
		p.Logger.Warn("JWT_SECRET is not set, tokens are signed with the development secret")
	}
	return NewJWTStrategy(p.Config.JWTSecret, Options{TTL: p.Config.TokenTTL, Issuer: defaultIssuer})
}
