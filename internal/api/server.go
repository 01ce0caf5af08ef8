package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"leagueops/internal/api/handlers"
	"leagueops/internal/api/middleware"
	"leagueops/internal/config"
	"leagueops/internal/database"
	"leagueops/internal/events"
	"leagueops/internal/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, publisher *events.Publisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Initialize handlers
	refundHandler := handlers.NewRefundHandler(db.DB, logger, cfg, publisher)
	productHandler := handlers.NewProductHandler(db.DB, logger, cfg, publisher)
	slackHandler := handlers.NewSlackHandler(db.DB, logger, cfg, publisher)
	webhookHandler := handlers.NewWebhookHandler(logger, cfg, publisher)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Refund requests
		refunds := v1.Group("/refunds")
		{
			refunds.POST("", refundHandler.Submit)
			refunds.GET("", refundHandler.List)
			refunds.GET("/:id", refundHandler.Get)
			refunds.POST("/:id/resolve", refundHandler.Resolve)
		}

		// League products
		products := v1.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
		}

		// Slack interactivity
		v1.POST("/slack/interactions", slackHandler.Interactions)

		// Shopify webhooks
		v1.POST("/webhooks/shopify", webhookHandler.Shopify)
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}
