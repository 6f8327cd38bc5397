// Package raster turns a submitted receipt (image or PDF) into a single
// normalized raster ready for OCR.
package raster

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"

	"github.com/introlaser/shop-bot/constants"
	"github.com/introlaser/shop-bot/internal/common"
)

type Config struct {
	// TempDir is the parent for per-invocation working directories.
	// Empty means the system temp dir.
	TempDir string
	// PDFEnabled gates PDF rasterization; when false PDF submissions are
	// rejected with a renderer-unavailable error instead of being opened.
	PDFEnabled bool
	// SharpenSigma controls the unsharp radius. Zero means 1.5.
	SharpenSigma float64
}

// Normalizer converts one submitted document into a grayscale, sharpened
// JPEG in its own temp directory.
type Normalizer struct {
	cfg    Config
	logger *slog.Logger
}

func NewNormalizer(cfg Config, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SharpenSigma <= 0 {
		cfg.SharpenSigma = 1.5
	}
	return &Normalizer{cfg: cfg, logger: logger}
}

// Normalize produces the normalized raster for path and returns its
// location plus a cleanup func. The cleanup func removes the working
// directory and must be called on every exit path; it is safe to call
// even when Normalize returns an error.
func (n *Normalizer) Normalize(ctx context.Context, path, format string) (string, func(), error) {
	cleanup := func() {}
	if _, err := os.Stat(path); err != nil {
		return "", cleanup, common.NewAppError("FILE_NOT_FOUND", "file not found", common.ErrNotFound)
	}

	workDir, err := os.MkdirTemp(n.cfg.TempDir, "receipt-raster-*")
	if err != nil {
		return "", cleanup, common.WrapError(err, "create work dir")
	}
	cleanup = func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			n.logger.Warn("failed to remove raster work dir", "dir", workDir, "error", rmErr)
		}
	}

	var img image.Image
	switch format {
	case constants.PDF:
		img, err = n.renderFirstPage(ctx, path)
		if err != nil {
			return "", cleanup, err
		}
	case constants.IMAGE:
		img, err = imaging.Open(path)
		if err != nil {
			n.logger.Warn("failed to decode image", "path", path, "error", err)
			return "", cleanup, common.NewAppError("IMAGE_DECODE", "cannot decode image", common.ErrCorruptDocument)
		}
	default:
		return "", cleanup, common.NewAppError("UNSUPPORTED_FORMAT", fmt.Sprintf("unsupported format %q", format), common.ErrInvalidInput)
	}

	// Grayscale then sharpen, for both input kinds.
	out := imaging.Sharpen(imaging.Grayscale(img), n.cfg.SharpenSigma)

	normalizedPath := filepath.Join(workDir, "normalized.jpg")
	if err := imaging.Save(out, normalizedPath); err != nil {
		return "", cleanup, common.WrapError(err, "save normalized raster")
	}
	n.logger.Debug("normalized raster ready",
		"source", path,
		"format", format,
		"normalized", normalizedPath,
	)
	return normalizedPath, cleanup, nil
}

// renderFirstPage rasterizes page one of a PDF at the renderer's default
// resolution.
func (n *Normalizer) renderFirstPage(ctx context.Context, path string) (image.Image, error) {
	if !n.cfg.PDFEnabled {
		return nil, common.NewAppError("PDF_DISABLED", "PDF processing requires the renderer", common.ErrRendererUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		n.logger.Warn("failed to open pdf", "path", path, "error", err)
		return nil, common.NewAppError("PDF_OPEN", "cannot open PDF document", common.ErrCorruptDocument)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, common.NewAppError("PDF_EMPTY", "PDF has no pages", common.ErrCorruptDocument)
	}
	img, err := doc.Image(0)
	if err != nil {
		return nil, common.NewAppError("PDF_RENDER", "cannot render PDF page", common.ErrCorruptDocument)
	}
	return img, nil
}
