package constants

// PaymentStatus is the canonical payment state for rows in orders.
type PaymentStatus string

// Stable values (store these exact strings in DB).
const (
	PaymentPending   PaymentStatus = "pending"   // order placed, receipt not accepted yet
	PaymentPaid      PaymentStatus = "paid"      // receipt accepted
	PaymentCancelled PaymentStatus = "cancelled" // terminal, set by admin
)

// Stage is the orchestrator's position in one receipt evaluation.
type Stage string

const (
	StageReceived   Stage = "RECEIVED"
	StageNormalized Stage = "NORMALIZED"
	StageExtracted  Stage = "EXTRACTED"
	StageClassified Stage = "CLASSIFIED"
	StageAccepted   Stage = "ACCEPTED"
	StageRejected   Stage = "REJECTED"
)
