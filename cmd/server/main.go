package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	invoicedash "github.com/set-night/invoicedash"
	"github.com/set-night/invoicedash/internal/cache"
	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/handler"
	"github.com/set-night/invoicedash/internal/repository"
	"github.com/set-night/invoicedash/internal/service"
	"github.com/set-night/invoicedash/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	if cfg.AutoMigrate {
		migrationsFS, err := fs.Sub(invoicedash.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	pages := cache.NewPageCache(cfg.PageCacheTTL, config.PageCacheCleanup)

	// Optional admin notifications
	var notifier service.Notifier
	if cfg.TelegramEnabled() {
		b, err := telegram.NewBot(cfg.BotToken)
		if err != nil {
			slog.Error("failed to create telegram bot", "error", err)
			os.Exit(1)
		}
		notifier = telegram.NewTelegramLogger(b, cfg)
		slog.Info("telegram notifications enabled", "chat_id", cfg.LogTelegramChatID)
	}

	invoiceService := service.NewInvoiceService(service.Deps{
		Invoices:             repository.NewInvoiceRepository(pool),
		Customers:            repository.NewCustomerRepository(pool),
		Pages:                pages,
		Notifier:             notifier,
		StrictMissingInvoice: cfg.StrictMissingInvoice,
	})

	gin.SetMode(gin.ReleaseMode)
	h := handler.New(handler.Deps{
		Cfg:      cfg,
		Invoices: invoiceService,
		Pages:    pages,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.NewEngine(h),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}
