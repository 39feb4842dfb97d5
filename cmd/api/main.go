// ProtoStack API server.
//
// Simulates cloud infrastructure provisioning and prototype-based
// cloning over an in-memory store.
//
// @title ProtoStack API
// @version 1.0
// @description Prototype-based cloud resource cloning API
// @BasePath /api/v1
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/protostack-io/protostack/internal/api/handlers"
	"github.com/protostack-io/protostack/internal/api/router"
	"github.com/protostack-io/protostack/internal/config"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/pkg/validator"
	"github.com/protostack-io/protostack/internal/providers"
	"github.com/protostack-io/protostack/internal/repository/memory"
	"github.com/protostack-io/protostack/internal/services"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	log.WithFields(map[string]interface{}{
		"version":     version,
		"environment": cfg.Server.Environment,
	}).Info("starting protostack api")

	// Repositories
	store := memory.NewStore()
	registry := memory.NewRegistry()
	auditLog := memory.NewAuditLog(cfg.Audit.MaxEvents)

	// Services
	catalogs := providers.NewCatalogs(log)
	resourceSvc := services.NewResourceService(store, catalogs, auditLog, log)
	prototypeSvc := services.NewPrototypeService(registry, store, auditLog, log)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(log, version),
		Resource:  handlers.NewResourceHandler(resourceSvc, log, val),
		Prototype: handlers.NewPrototypeHandler(prototypeSvc, log, val),
		Logs:      handlers.NewLogsHandler(auditLog, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.With("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "graceful shutdown failed")
		os.Exit(1)
	}

	log.Info("server stopped")
}
