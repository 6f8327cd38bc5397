package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/introlaser/shop-bot/internal/archive"
	"github.com/introlaser/shop-bot/internal/async"
	"github.com/introlaser/shop-bot/internal/clock"
	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/export"
	"github.com/introlaser/shop-bot/internal/llm"
	"github.com/introlaser/shop-bot/internal/llm/openai"
	"github.com/introlaser/shop-bot/internal/notify"
	"github.com/introlaser/shop-bot/internal/ocr"
	"github.com/introlaser/shop-bot/internal/pipeline"
	"github.com/introlaser/shop-bot/internal/raster"
	repo "github.com/introlaser/shop-bot/internal/repository"
	svc "github.com/introlaser/shop-bot/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, pool, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(pool, logger)

	if err := repo.HealthCheck(ctx, pool, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	if err := repo.Migrate(gdb, logger); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	productsRepo := repo.NewProductRepository(gdb, logger)
	ordersRepo := repo.NewOrderRepository(gdb, logger)
	cartsRepo := repo.NewCartRepository(gdb, logger)
	receiptsRepo := repo.NewReceiptRepository(gdb, logger)
	feedbackRepo := repo.NewFeedbackRepository(gdb, logger)

	shopClock := clock.NewFixedZone(cfg.Receipts.Timezone)

	normalizer := raster.NewNormalizer(raster.Config{
		TempDir:    cfg.OCR.TempDir,
		PDFEnabled: cfg.Receipts.PDFEnabled,
	}, logger)
	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	classifier := openai.NewClient(openai.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, llm.BuildPrompts(cfg.LLM.PayeeNames), shopClock.Location(), logger)
	archiver := archive.NewStore(archive.Config{
		Dir:       cfg.Receipts.ArchiveDir,
		Retention: time.Duration(cfg.Receipts.RetentionHours) * time.Hour,
	}, shopClock, logger)

	validator := pipeline.NewValidator(
		normalizer, extractor, classifier, archiver,
		receiptsRepo, ordersRepo, shopClock, logger,
	)

	var mailer notify.Mailer
	mailer, err = notify.NewSMTPMailer(cfg.SMTP, logger)
	if err != nil {
		// No credentials means no mail, not no shop.
		logger.Warn("mail disabled", "error", err)
		mailer = notify.NopMailer(logger)
	}
	mailQueue := async.NewMailQueue(mailer, logger,
		async.WithWorkers(2),
		async.WithQueueSize(128),
		async.WithSendTimeout(time.Minute),
	)
	dispatcher := notify.NewDispatcher(cfg.SMTP.AdminEmail)

	exporter := export.NewService(ordersRepo, shopClock, logger)

	server := svc.NewServer(
		productsRepo, ordersRepo, cartsRepo, receiptsRepo, feedbackRepo,
		validator, dispatcher, mailQueue, exporter, logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: server.Router(),
	}

	logger.Info("shop-bot listening", "addr", cfg.Server.HTTPAddr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown interrupted", "error", err)
	}
	mailQueue.Shutdown(shutdownCtx)
}
