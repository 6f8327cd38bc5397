package repository

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/introlaser/shop-bot/internal/common"
)

func TestOpen_MalformedDSN(t *testing.T) {
	_, _, err := Open(context.Background(), Config{
		DSN:         "://not-a-dsn",
		DialTimeout: time.Second,
	}, slog.Default())
	if err == nil {
		t.Fatalf("expected an error for a malformed DSN")
	}
	if !errors.Is(err, common.ErrDatabase) {
		t.Errorf("expected ErrDatabase, got %v", err)
	}
}
