package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vesta-storefront/internal/cart"
	"vesta-storefront/internal/checkout"
	"vesta-storefront/internal/config"
	"vesta-storefront/internal/gateway"
	"vesta-storefront/internal/handlers"
	"vesta-storefront/internal/middleware"
	"vesta-storefront/internal/session"
	"vesta-storefront/pkg/logger"
)

type Application struct {
	cfg *config.Config

	sessions *session.RedisStore
	gateway  *gateway.Client
	carts    *cart.Store
	checkout *checkout.Orchestrator

	handlers    handlerContainer
	rateLimiter *middleware.RateLimitManager
	router      *gin.Engine
	server      *http.Server
}

type handlerContainer struct {
	Auth     *handlers.AuthHandler
	Register *handlers.RegisterHandler
	Recovery *handlers.RecoveryHandler
	Cart     *handlers.CartHandler
	Admin    *handlers.AdminHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initSessions(); err != nil {
		return nil, err
	}

	app.initGateway()
	app.initServices()
	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"api_url":     a.cfg.APIURL,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			logger.Error(err, "Failed to close session store", nil)
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initSessions() error {
	logger.Info("Connecting to session store", map[string]interface{}{"redis": a.cfg.RedisURL})

	sessions, err := session.NewRedisStore(a.cfg.RedisURL, a.cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	a.sessions = sessions
	return nil
}

func (a *Application) initGateway() {
	a.gateway = gateway.New(
		a.cfg.APIURL,
		a.cfg.APIConnectTimeout,
		a.cfg.APIReadTimeout,
		a.cfg.APIVerboseLog,
	)
}

func (a *Application) initServices() {
	a.carts = cart.NewStore(a.sessions)
	a.checkout = checkout.NewOrchestrator(a.carts, a.gateway)
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Auth:     handlers.NewAuthHandler(a.gateway, a.sessions),
		Register: handlers.NewRegisterHandler(a.gateway),
		Recovery: handlers.NewRecoveryHandler(a.gateway),
		Cart:     handlers.NewCartHandler(a.carts, a.checkout),
		Admin:    handlers.NewAdminHandler(a.gateway),
	}
}

func (a *Application) initRouter() {
	if a.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimiter = middleware.NewRateLimitManager(context.Background())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(middleware.RequestIDMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.rateLimiter, a.cfg))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.SessionMiddleware(a.cfg.SessionCookieName, int(a.cfg.SessionTTL.Seconds())))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"site":   a.cfg.SiteName,
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Public auth and recovery surface
	router.POST("/login", a.handlers.Auth.Login)
	router.GET("/logout", a.handlers.Auth.Logout)
	router.POST("/resend-confirmation", a.handlers.Auth.ResendConfirmation)
	router.POST("/register", a.handlers.Register.Register)
	router.POST("/check-recovery-methods", a.handlers.Recovery.CheckRecoveryMethods)
	router.POST("/forgot-password", a.handlers.Recovery.ForgotPassword)
	router.POST("/reset-password", a.handlers.Recovery.ResetPassword)

	// Client area
	cliente := router.Group("/cliente")
	cliente.Use(middleware.RequireAuth(a.sessions))
	{
		cliente.GET("/carrito", a.handlers.Cart.View)
		cliente.POST("/carrito/agregar", a.handlers.Cart.Add)
		cliente.GET("/carrito/eliminar/:index", a.handlers.Cart.Remove)
		cliente.POST("/carrito/checkout", a.handlers.Cart.Checkout)
	}

	// Admin area
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(a.sessions), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", a.handlers.Admin.Dashboard)
	}

	a.router = router
}
