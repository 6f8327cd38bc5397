// validate-receipt runs the validation pipeline on a local file against
// today's date, without an order or a database. Useful for checking a
// receipt or a tesseract install by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/introlaser/shop-bot/constants"
	"github.com/introlaser/shop-bot/internal/clock"
	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/llm"
	"github.com/introlaser/shop-bot/internal/llm/openai"
	"github.com/introlaser/shop-bot/internal/ocr"
	"github.com/introlaser/shop-bot/internal/raster"
)

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: validate-receipt [-v] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	_ = godotenv.Load()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY is required")
		os.Exit(2)
	}

	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		fmt.Fprintln(os.Stderr, "unsupported file type, want pdf/jpg/jpeg/png")
		os.Exit(2)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	rasterPath, cleanup, err := normalizer.Normalize(ctx, path, format)
	defer cleanup()
	if err != nil {
		fmt.Printf("REJECTED: %v\n", err)
		os.Exit(1)
	}

	res, err := extractor.Extract(ctx, rasterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocr failed: %v\n", err)
		os.Exit(1)
	}
	if res.Text == "" {
		fmt.Println("REJECTED: no text recognized")
		os.Exit(1)
	}

	verdict := classifier.CheckReceipt(ctx, res.Text)
	if !verdict.IsReceipt {
		fmt.Printf("REJECTED: %s\n", verdict.Reason)
		os.Exit(1)
	}

	date, ok := classifier.ExtractDate(ctx, res.Text)
	if !ok {
		fmt.Println("REJECTED: payment date not found")
		os.Exit(1)
	}

	loc := shopClock.Location()
	got := clock.DateOf(date, loc)
	today := clock.DateOf(shopClock.Now(), loc)
	if !got.Equal(today) {
		fmt.Printf("REJECTED: receipt date %s is not today (%s)\n",
			got.Format("02.01.2006"), today.Format("02.01.2006"))
		os.Exit(1)
	}

	fmt.Printf("ACCEPTED: receipt dated %s\n", got.Format("02.01.2006"))
}
