// Package archive persists accepted receipt files until the retention
// deadline. Deletion past the deadline belongs to an external reaper;
// this package only ever writes.
package archive

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/introlaser/shop-bot/internal/clock"
	"github.com/introlaser/shop-bot/internal/common"
)

type Config struct {
	// Dir is the archive directory, created on first use.
	Dir string
	// Retention is how long an archived file must be kept. Zero means
	// 24 hours.
	Retention time.Duration
}

type Store struct {
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger
}

func NewStore(cfg Config, clk clock.Clock, logger *slog.Logger) *Store {
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{cfg: cfg, clock: clk, logger: logger}
}

// Save copies the original submitted file into the archive under a name
// keyed by user id and the submission timestamp, and returns the
// archived path together with the retention deadline.
func (s *Store) Save(originalPath, userID string) (string, time.Time, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", time.Time{}, common.WrapError(err, "create archive dir")
	}

	now := s.clock.Now()
	name := fmt.Sprintf("receipt_%s_%s%s", userID, now.Format("20060102_150405"), filepath.Ext(originalPath))
	dst := filepath.Join(s.cfg.Dir, name)

	if err := copyFile(originalPath, dst); err != nil {
		return "", time.Time{}, common.WrapError(err, "archive receipt file")
	}

	expiresAt := now.Add(s.cfg.Retention)
	s.logger.Info("receipt archived",
		"user_id", userID,
		"path", dst,
		"expires_at", expiresAt.Format(time.RFC3339),
	)
	return dst, expiresAt, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
