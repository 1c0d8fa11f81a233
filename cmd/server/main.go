package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hairlyf/backend/internal/config"
	"github.com/hairlyf/backend/internal/es"
	"github.com/hairlyf/backend/internal/events"
	"github.com/hairlyf/backend/internal/httpserver"
	"github.com/hairlyf/backend/internal/logging"
	"github.com/hairlyf/backend/internal/mail"
	mwauth "github.com/hairlyf/backend/internal/middleware/auth"
	loggingmw "github.com/hairlyf/backend/internal/middleware/logging"
	"github.com/hairlyf/backend/internal/repo"
	"github.com/hairlyf/backend/internal/search"
	"github.com/hairlyf/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	producer := events.NewProducer(cfg.KAFKA_ADDRESS)

	esClient, err := es.NewClient(cfg, logger)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	mailer := mail.NewMailer(cfg.SMTP_HOST, cfg.SMTP_PORT, cfg.SMTP_USER, cfg.SMTP_PASSWORD, logger)

	r := repo.New(db)
	jwtSecret := []byte(cfg.JWT_SECRET)

	accountSvc := &service.AccountService{
		Repo:                     r,
		Mailer:                   mailer,
		Producer:                 producer,
		JWTSecret:                jwtSecret,
		FrontendURL:              cfg.FRONTEND_URL,
		RequireEmailVerification: cfg.REQUIRE_EMAIL_VERIFICATION,
		MinPasswordLength:        cfg.MIN_PASSWORD_LENGTH,
	}
	catalogSvc := &service.CatalogService{
		Repo:     r,
		Producer: producer,
		Indexer:  search.NewIndexer(esClient, cfg.ES_INDEX),
	}
	cartSvc := &service.CartService{Repo: r}
	wishlistSvc := &service.WishlistService{Repo: r}
	orderSvc := &service.OrderService{
		Repo:         r,
		Producer:     producer,
		ReserveStock: cfg.RESERVE_STOCK_ON_ORDER,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Gate:         mwauth.NewGate(r, jwtSecret),
		AccountHTTP:  &httpserver.AccountHTTP{Svc: accountSvc},
		CatalogHTTP:  &httpserver.CatalogHTTP{Svc: catalogSvc},
		CartHTTP:     &httpserver.CartHTTP{Svc: cartSvc},
		WishlistHTTP: &httpserver.WishlistHTTP{Svc: wishlistSvc},
		OrderHTTP:    &httpserver.OrderHTTP{Svc: orderSvc},
	}
	if esClient != nil {
		deps.SearchHTTP = &httpserver.SearchHTTP{ES: esClient, Index: cfg.ES_INDEX}
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.PORT)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
