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

	"github.com/aadhidev/stockify/internal/auth"
	"github.com/aadhidev/stockify/internal/config"
	"github.com/aadhidev/stockify/internal/handlers"
	"github.com/aadhidev/stockify/internal/httpserver"
	"github.com/aadhidev/stockify/internal/logging"
	"github.com/aadhidev/stockify/internal/mykafka"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/aadhidev/stockify/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	gormRepo := &repo.GormRepo{DB: db}
	audit := &service.AuditService{Repo: gormRepo, Producer: producer}
	tokens := &auth.TokenService{
		DB:            db,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}

	deps := httpserver.Deps{
		Tokens: tokens,
		AuthHandler: &handlers.AuthHandler{
			Repo:      gormRepo,
			Audit:     audit,
			Tokens:    tokens,
			AdminCode: configuration.ADMIN_CODE,
		},
		InventoryHandler: &handlers.InventoryHandler{
			Svc: &service.InventoryService{Repo: gormRepo, Audit: audit},
		},
		OrderHandler: &handlers.OrderHandler{
			Svc: &service.OrderService{Repo: gormRepo, Audit: audit},
		},
		ActivityHandler: &handlers.ActivityHandler{Svc: audit},
		UserHandler: &handlers.UserHandler{
			Svc: &service.UserService{Repo: gormRepo, Audit: audit},
		},
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
