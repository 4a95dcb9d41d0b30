package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/config"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/db"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/logger"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/pkg/mailer"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	config.Watch(configPath, conf, func(e fsnotify.Event) {
		zap.L().Info("config reloaded", zap.String("file", e.Name), zap.Bool("smtp_enabled", conf.SMTP.Snapshot().Enabled))
	})

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := api.NewServer(ctx, conf, postgresDB, mailer.NewSMTPNotifier(conf.SMTP))

	addr := ":" + s.Config.API.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	zap.L().Info("shutting down server")
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}
