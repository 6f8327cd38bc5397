package ocr

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	// Language is the locale-tuned model tried first; if its output is
	// empty the extractor retries once with no language hint.
	Language    string // default "rus"
	TessdataDir string
}

type ExtractionResult struct {
	Text     string
	Language string // language of the attempt that produced Text
	Retried  bool   // generic retry was taken
	Duration time.Duration
}

// Extractor produces best-effort text from a normalized raster. "No text
// found" is a data state (empty Text), never an error: engine failures
// degrade to an empty attempt and fall through to the generic retry.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "rus"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract runs OCR over the raster at path. The locale-tuned model goes
// first; a whitespace-only result triggers one retry with the generic
// model. The returned error is always nil unless ctx was cancelled.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()

	text, err := e.tesseract(ctx, path, e.cfg.Language)
	if err != nil {
		if ctx.Err() != nil {
			return ExtractionResult{}, ctx.Err()
		}
		e.logger.Warn("locale ocr attempt failed, treating as empty", "lang", e.cfg.Language, "error", err)
		text = ""
	}

	res := ExtractionResult{Text: Normalize(text), Language: e.cfg.Language}
	if strings.TrimSpace(res.Text) == "" {
		e.logger.Info("no text with locale model, retrying generic", "lang", e.cfg.Language)
		text, err = e.tesseract(ctx, path, "")
		if err != nil {
			if ctx.Err() != nil {
				return ExtractionResult{}, ctx.Err()
			}
			e.logger.Warn("generic ocr attempt failed, treating as empty", "error", err)
			text = ""
		}
		res = ExtractionResult{Text: Normalize(text), Language: "", Retried: true}
	}

	res.Duration = time.Since(start)
	e.logger.Debug("ocr extraction done",
		"path", path,
		"retried", res.Retried,
		"text_bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) tesseract(ctx context.Context, path, lang string) (string, error) {
	args := []string{path, "stdout"}
	if lang != "" {
		args = append(args, "-l", lang)
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout [-l <lang>]
	out, err := e.runner.Run(ctx, e.cfg.Tesseract, e.logger, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
