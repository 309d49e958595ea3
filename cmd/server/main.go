package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Gab661-coder/Gabinvest/internal/config"
	apphttp "github.com/Gab661-coder/Gabinvest/internal/http"
	"github.com/Gab661-coder/Gabinvest/internal/repository"
	"github.com/Gab661-coder/Gabinvest/internal/repository/sqlite"
	"github.com/Gab661-coder/Gabinvest/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	store := sqlite.NewStore(db)
	if err := store.Init(ctx); err != nil {
		logger.Fatalf("init store: %v", err)
	}

	registry := repository.NewAccountRegistry(store, cfg.Storage.UsersKey)
	if err := registry.Load(ctx); err != nil {
		if !errors.Is(err, repository.ErrCorruptRecord) {
			logger.Fatalf("load account registry: %v", err)
		}
		logger.Warnf("discarding unreadable user list: %v", err)
	}

	sessions := service.NewSessionService(registry, store, cfg.Storage.SessionKey)
	if err := sessions.Restore(ctx); err != nil {
		if !errors.Is(err, repository.ErrCorruptRecord) {
			logger.Fatalf("restore session: %v", err)
		}
		logger.Warnf("discarding unreadable session snapshot: %v", err)
	}

	investments := service.NewInvestmentService(sessions, registry)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(sessions, investments, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
