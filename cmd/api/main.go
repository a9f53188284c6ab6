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

	"github.com/robfig/cron/v3"

	"github.com/DanillS/doors-web/internal/config"
	"github.com/DanillS/doors-web/internal/db"
	"github.com/DanillS/doors-web/internal/httpserver"
	doorrepo "github.com/DanillS/doors-web/internal/repository/door"
	adminsvc "github.com/DanillS/doors-web/internal/service/admin"
	catalogsvc "github.com/DanillS/doors-web/internal/service/catalog"
	pricingsvc "github.com/DanillS/doors-web/internal/service/pricing"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	doorRepo := doorrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(doorRepo)
	pricingService := pricingsvc.New(doorRepo, logger)
	adminService := adminsvc.New(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash, cfg.SessionTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:    catalogService,
		PricingSvc:    pricingService,
		AdminSvc:      adminService,
		SessionSecret: cfg.SessionSecret,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	// The hosted database suspends after a period of inactivity, so a
	// scheduled trivial read keeps it warm without external pingers.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.KeepAliveSchedule, func() {
		pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := catalogService.Ping(pingCtx); err != nil {
			logger.Printf("keep-alive ping: %v", err)
		}
	}); err != nil {
		logger.Fatalf("schedule keep-alive %q: %v", cfg.KeepAliveSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
