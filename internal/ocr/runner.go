package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner lets us stub the OCR binary in tests.
type Runner interface {
	Run(ctx context.Context, name string, logger *slog.Logger, args ...string) ([]byte, error)
}

type execRunner struct{}

// Run executes the binary and returns its stdout. Stderr only matters
// when the engine fails, so it is logged there and not returned.
func (execRunner) Run(ctx context.Context, name string, logger *slog.Logger, args ...string) ([]byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		logger.Error("ocr.exec.failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", dur.Milliseconds(),
			"error", err,
			"stderr", strings.TrimSpace(errb.String()),
		)
		return nil, err
	}

	logger.Debug("ocr.exec.ok",
		"cmd", name,
		"args", strings.Join(args, " "),
		"duration_ms", dur.Milliseconds(),
		"stdout_bytes", out.Len(),
	)
	return out.Bytes(), nil
}
