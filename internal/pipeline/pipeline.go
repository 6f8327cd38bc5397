// Package pipeline sequences receipt validation: normalize the document,
// extract text, classify it, apply the date rule, then archive and
// commit. Each submission is one independent unit of work that owns its
// temporary files and shares no mutable state with other submissions.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/introlaser/shop-bot/constants"
	"github.com/introlaser/shop-bot/internal/archive"
	"github.com/introlaser/shop-bot/internal/clock"
	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
	"github.com/introlaser/shop-bot/internal/llm"
	"github.com/introlaser/shop-bot/internal/ocr"
	"github.com/introlaser/shop-bot/internal/repository"
)

// Submission is the per-unit-of-work context threaded through every
// stage. The file at FilePath is transient and owned by this run.
type Submission struct {
	FilePath string
	Format   string // constants.PDF | constants.IMAGE
	UserID   string
	// Order anchors the date rule to the order's creation date and is
	// flipped to paid on acceptance. Nil means a standalone check
	// against today's date.
	Order *entity.Order
}

// Outcome is the orchestrator's single return contract. Accepted=false
// with a Message is a business rejection; system failures (archival or
// commit errors) are returned as errors instead, so the caller can tell
// "invalid receipt" apart from "try again".
type Outcome struct {
	Accepted     bool
	Stage        constants.Stage
	PaymentDate  *time.Time
	ArchivedPath string
	Message      string
}

// Normalizer produces the OCR-ready raster for a submitted document.
type Normalizer interface {
	Normalize(ctx context.Context, path, format string) (string, func(), error)
}

// TextExtractor produces best-effort text from a normalized raster.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
}

// Archiver persists an accepted receipt file with a retention deadline.
type Archiver interface {
	Save(originalPath, userID string) (string, time.Time, error)
}

var _ Archiver = (*archive.Store)(nil)

// Validator runs the receipt validation state machine.
type Validator struct {
	normalizer Normalizer
	extractor  TextExtractor
	classifier llm.Classifier
	archiver   Archiver
	receipts   repository.ReceiptRepository
	orders     repository.OrderRepository
	clock      clock.Clock
	locks      *orderLocks
	logger     *slog.Logger
}

func NewValidator(
	normalizer Normalizer,
	extractor TextExtractor,
	classifier llm.Classifier,
	archiver Archiver,
	receipts repository.ReceiptRepository,
	orders repository.OrderRepository,
	clk clock.Clock,
	logger *slog.Logger,
) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		normalizer: normalizer,
		extractor:  extractor,
		classifier: classifier,
		archiver:   archiver,
		receipts:   receipts,
		orders:     orders,
		clock:      clk,
		locks:      newOrderLocks(),
		logger:     logger,
	}
}

// Validate drives one submission through
// Received -> Normalized -> Extracted -> Classified -> Accepted|Rejected.
// Resubmission after a rejection is a brand-new run: no dedup, no
// history of prior attempts.
func (v *Validator) Validate(ctx context.Context, sub Submission) (Outcome, error) {
	if sub.Order != nil {
		release, err := v.locks.acquire(sub.Order.ID)
		if errors.Is(err, common.ErrEvaluationInProgress) {
			v.logger.Warn("pipeline.busy", "order_id", sub.Order.ID, "user_id", sub.UserID)
			return rejected(constants.StageReceived, MsgEvaluationInProgress), nil
		}
		defer release()
	}

	v.logger.Info("pipeline.received",
		"user_id", sub.UserID,
		"format", sub.Format,
		"has_order", sub.Order != nil,
	)

	// Received -> Normalized
	rasterPath, cleanup, err := v.normalizer.Normalize(ctx, sub.FilePath, sub.Format)
	defer cleanup()
	if err != nil {
		return v.rejectNormalize(sub, err)
	}

	// Normalized -> Extracted
	res, err := v.extractor.Extract(ctx, rasterPath)
	if err != nil {
		return Outcome{}, common.WrapError(err, "extract text")
	}
	if res.Text == "" {
		v.logger.Info("pipeline.rejected", "stage", constants.StageExtracted, "user_id", sub.UserID, "reason", "empty text")
		return rejected(constants.StageExtracted, MsgTextNotRecognized), nil
	}

	// Extracted -> Classified. The validity check short-circuits: no
	// date extraction call is made for a non-receipt.
	verdict := v.classifier.CheckReceipt(ctx, res.Text)
	if !verdict.IsReceipt {
		msg := verdict.Reason
		if msg == "" {
			msg = MsgNotAReceipt
		}
		v.logger.Info("pipeline.rejected", "stage", constants.StageClassified, "user_id", sub.UserID, "reason", msg)
		return rejected(constants.StageClassified, msg), nil
	}

	paymentDate, ok := v.classifier.ExtractDate(ctx, res.Text)
	if !ok {
		v.logger.Info("pipeline.rejected", "stage", constants.StageClassified, "user_id", sub.UserID, "reason", "date not found")
		return rejected(constants.StageClassified, MsgDateNotFound), nil
	}

	// Terminal rule: exact civil-date equality in the shop's fixed zone.
	loc := v.clock.Location()
	expected := clock.DateOf(v.clock.Now(), loc)
	if sub.Order != nil {
		expected = clock.DateOf(sub.Order.CreatedAt, loc)
	}
	got := clock.DateOf(paymentDate, loc)
	if !got.Equal(expected) {
		v.logger.Warn("pipeline.date_mismatch",
			"user_id", sub.UserID,
			"receipt_date", got.Format("2006-01-02"),
			"expected_date", expected.Format("2006-01-02"),
		)
		return rejected(constants.StageClassified, MsgDateMismatch), nil
	}

	return v.accept(ctx, sub, got)
}

// accept archives the original file and commits the acceptance. Any
// failure here must not claim acceptance: it surfaces as an error, which
// the caller reports as "retry", never as "receipt invalid".
func (v *Validator) accept(ctx context.Context, sub Submission, paymentDate time.Time) (Outcome, error) {
	archivedPath, expiresAt, err := v.archiver.Save(sub.FilePath, sub.UserID)
	if err != nil {
		return Outcome{}, common.WrapError(err, "archive accepted receipt")
	}

	rec := &entity.ReceiptRecord{
		ID:           uuid.New(),
		UserID:       sub.UserID,
		ArchivedPath: archivedPath,
		PaymentDate:  paymentDate,
		CreatedAt:    v.clock.Now(),
		ExpiresAt:    expiresAt,
	}
	if sub.Order != nil {
		rec.OrderID = &sub.Order.ID
	}
	if err := v.receipts.Create(ctx, rec); err != nil {
		return Outcome{}, common.WrapError(err, "persist receipt record")
	}

	if sub.Order != nil {
		if err := v.orders.MarkPaid(ctx, sub.Order.ID); err != nil {
			return Outcome{}, common.WrapError(err, "mark order paid")
		}
	}

	v.logger.Info("pipeline.accepted",
		"user_id", sub.UserID,
		"payment_date", paymentDate.Format("2006-01-02"),
		"archived_path", archivedPath,
	)
	return Outcome{
		Accepted:     true,
		Stage:        constants.StageAccepted,
		PaymentDate:  &paymentDate,
		ArchivedPath: archivedPath,
		Message:      MsgAccepted,
	}, nil
}

// rejectNormalize maps normalizer failures onto the input-error taxonomy.
// Unknown errors are system failures and propagate.
func (v *Validator) rejectNormalize(sub Submission, err error) (Outcome, error) {
	var msg string
	switch {
	case errors.Is(err, common.ErrNotFound):
		msg = MsgFileNotFound
	case errors.Is(err, common.ErrRendererUnavailable):
		msg = MsgPDFRenderer
	case errors.Is(err, common.ErrCorruptDocument):
		if sub.Format == constants.PDF {
			msg = MsgPDFError
		} else {
			msg = MsgDocumentError
		}
	case errors.Is(err, common.ErrInvalidInput):
		msg = MsgUnsupportedFormat
	default:
		return Outcome{}, common.WrapError(err, "normalize document")
	}
	v.logger.Info("pipeline.rejected", "stage", constants.StageNormalized, "user_id", sub.UserID, "reason", msg, "error", err)
	return rejected(constants.StageNormalized, msg), nil
}

func rejected(stage constants.Stage, message string) Outcome {
	return Outcome{Accepted: false, Stage: stage, Message: message}
}
