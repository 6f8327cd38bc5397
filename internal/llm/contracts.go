package llm

import (
	"context"
	"time"
)

// Verdict is the classifier's judgment about a piece of extracted text.
// Immutable once produced.
type Verdict struct {
	IsReceipt bool
	// Reason is the model-supplied explanation. Empty when the model
	// answered without a delimiter or the call degraded.
	Reason string
}

// Classifier decides whether extracted text is a valid payment receipt
// for the configured payee and extracts the payment date from it.
//
// Implementations must catch transport/API errors internally and degrade
// that call to a negative result: a classifier outage rejects the
// submission (the receipt can be resubmitted) instead of blocking the
// pipeline.
type Classifier interface {
	CheckReceipt(ctx context.Context, text string) Verdict
	ExtractDate(ctx context.Context, text string) (time.Time, bool)
}
