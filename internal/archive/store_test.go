package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var archiveTestNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time           { return archiveTestNow }
func (fixedClock) Location() *time.Location { return time.UTC }

func TestSave(t *testing.T) {
	src := filepath.Join(t.TempDir(), "upload.jpg")
	if err := os.WriteFile(src, []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "archive")
	s := NewStore(Config{Dir: dir}, fixedClock{}, nil)

	path, expiresAt, err := s.Save(src, "user-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	wantName := "receipt_user-1_20250310_143000.jpg"
	if filepath.Base(path) != wantName {
		t.Errorf("archived name = %q, want %q", filepath.Base(path), wantName)
	}
	if !expiresAt.Equal(archiveTestNow.Add(24 * time.Hour)) {
		t.Errorf("expected default 24h retention, got %v", expiresAt)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read archived file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("archived content differs from the original")
	}

	// The original stays where it was; the caller owns its lifetime.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("original must not be moved or deleted: %v", err)
	}
}

func TestSave_CustomRetention(t *testing.T) {
	src := filepath.Join(t.TempDir(), "upload.pdf")
	if err := os.WriteFile(src, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(Config{Dir: t.TempDir(), Retention: 48 * time.Hour}, fixedClock{}, nil)

	path, expiresAt, err := s.Save(src, "user-2")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if filepath.Ext(path) != ".pdf" {
		t.Errorf("archived name must keep the original extension, got %q", path)
	}
	if !expiresAt.Equal(archiveTestNow.Add(48 * time.Hour)) {
		t.Errorf("expected 48h retention, got %v", expiresAt)
	}
}

func TestSave_MissingSource(t *testing.T) {
	s := NewStore(Config{Dir: t.TempDir()}, fixedClock{}, nil)
	if _, _, err := s.Save("/nope/upload.jpg", "user-1"); err == nil {
		t.Fatalf("expected an error for a missing source file")
	}
}
