package raster

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/introlaser/shop-bot/constants"
	"github.com/introlaser/shop-bot/internal/common"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for x := 10; x < 30; x++ {
		img.Set(x, 20, color.Black)
	}
	path := filepath.Join(t.TempDir(), "receipt.jpg")
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save test image: %v", err)
	}
	return path
}

func TestNormalize_Image(t *testing.T) {
	src := writeTestImage(t)
	n := NewNormalizer(Config{TempDir: t.TempDir(), PDFEnabled: true}, nil)

	out, cleanup, err := n.Normalize(context.Background(), src, constants.IMAGE)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("normalized raster missing: %v", err)
	}

	cleanup()
	if _, err := os.Stat(filepath.Dir(out)); !os.IsNotExist(err) {
		t.Errorf("cleanup must remove the work dir")
	}
}

func TestNormalize_MissingFile(t *testing.T) {
	n := NewNormalizer(Config{}, nil)
	_, cleanup, err := n.Normalize(context.Background(), "/nope/receipt.jpg", constants.IMAGE)
	cleanup()
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalize_CorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	if err := os.WriteFile(path, []byte("definitely not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := NewNormalizer(Config{}, nil)
	_, cleanup, err := n.Normalize(context.Background(), path, constants.IMAGE)
	cleanup()
	if !errors.Is(err, common.ErrCorruptDocument) {
		t.Errorf("expected ErrCorruptDocument, got %v", err)
	}
}

func TestNormalize_PDFDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := NewNormalizer(Config{PDFEnabled: false}, nil)
	_, cleanup, err := n.Normalize(context.Background(), path, constants.PDF)
	cleanup()
	if !errors.Is(err, common.ErrRendererUnavailable) {
		t.Errorf("expected ErrRendererUnavailable, got %v", err)
	}
}

func TestNormalize_UnsupportedFormat(t *testing.T) {
	src := writeTestImage(t)
	n := NewNormalizer(Config{}, nil)
	_, cleanup, err := n.Normalize(context.Background(), src, "SPREADSHEET")
	cleanup()
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
