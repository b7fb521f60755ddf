package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/laundry/internal/config"
)

const readHeaderTimeout = 5 * time.Second

// Module wires the facade, the HTTP server and its lifecycle.
var Module = fx.Options(
	fx.Provide(
		NewLaundryFacade,
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
	Logger *slog.Logger `optional:"true"`
}

func newHTTPServer(p serverParams) *http.Server {
	srv := &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if p.Logger != nil {
		srv.ErrorLog = slog.NewLogLogger(p.Logger.Handler(), slog.LevelError)
	}
	return srv
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Facade     *LaundryFacade
	Config     *config.Config
}

type lifecycle struct {
	lifecycleParams
}

func registerLifecycle(p lifecycleParams) {
	rt := &lifecycle{lifecycleParams: p}
	p.Lifecycle.Append(fx.Hook{OnStart: rt.start, OnStop: rt.stop})
}

func (rt *lifecycle) start(ctx context.Context) error {
	if err := rt.bootstrapAdmin(ctx); err != nil {
		return err
	}

	rt.Logger.Info("laundry listening", slog.String("addr", rt.Server.Addr))
	go rt.serve()
	return nil
}

// bootstrapAdmin makes sure the configured administrator exists before traffic is accepted.
func (rt *lifecycle) bootstrapAdmin(ctx context.Context) error {
	admin := rt.Config.Admin
	if !admin.Enabled() {
		return nil
	}

	usr, err := rt.Facade.EnsureAdmin(ctx, admin.Name, admin.Phone, admin.Password)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	rt.Logger.Info("administrator ready", slog.Int64("user_id", usr.ID), slog.String("phone", usr.PhoneNumber))
	return nil
}

func (rt *lifecycle) serve() {
	err := rt.Server.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	rt.Logger.Error("http server terminated", slog.String("error", err.Error()))
	if err := rt.Shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
		rt.Logger.Error("request shutdown", slog.String("error", err.Error()))
	}
}

func (rt *lifecycle) stop(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok && rt.Config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.Config.ShutdownTimeout)
		defer cancel()
	}

	if err := rt.Server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	rt.Logger.Info("laundry stopped")
	return nil
}
