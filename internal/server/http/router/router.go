package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/laundry/internal/server/http/handlers"
	"github.com/polkiloo/laundry/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LaundryFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/profile", authHandler.Profile)
	userAuth.GET("/orders", orderHandler.CustomerOrders)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.POST("/orders", orderHandler.Create)
	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:code", orderHandler.Get)
	admin.PATCH("/orders/:code", orderHandler.Update)
	admin.PUT("/orders/:code/payment-status", orderHandler.UpdatePaymentStatus)
	admin.PUT("/orders/:code/wash-weight", orderHandler.UpdateWashWeight)
	admin.GET("/users", orderHandler.Users)

	return engine
}
