package llm

import (
	"strings"
	"time"
)

// DateLayout is the wire format the date-extraction prompt demands.
const DateLayout = "02.01.2006"

// DateNotFound is the sentinel the model answers when no date is present.
const DateNotFound = "not_found"

// ParseVerdict decodes the fixed `true|reason` / `false|reason` answer
// shape. Split happens on the first `|`; a missing delimiter means "no
// reason given"; anything other than literal `true` is a rejection.
func ParseVerdict(answer string) Verdict {
	answer = strings.ToLower(strings.TrimSpace(answer))
	status, reason, found := strings.Cut(answer, "|")
	if !found {
		return Verdict{IsReceipt: status == "true"}
	}
	return Verdict{
		IsReceipt: status == "true",
		Reason:    strings.TrimSpace(reason),
	}
}

// ParseReceiptDate decodes a DD.MM.YYYY answer in loc. The sentinel and
// any unparsable answer both yield ok=false; downstream treats that as a
// validation failure, not an error.
func ParseReceiptDate(answer string, loc *time.Location) (time.Time, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, DateNotFound) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, answer, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
