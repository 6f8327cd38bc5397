package llm

import (
	"testing"
	"time"
)

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		name       string
		answer     string
		wantValid  bool
		wantReason string
	}{
		{"positive", "true|найдены реквизиты получателя", true, "найдены реквизиты получателя"},
		{"negative", "false|реквизиты получателя не найдены", false, "реквизиты получателя не найдены"},
		{"uppercase", "TRUE|ок", true, "ок"},
		{"padded", "  true | реквизиты найдены ", true, "реквизиты найдены"},
		{"no delimiter", "true", true, ""},
		{"bare false", "false", false, ""},
		{"garbage", "I think this is a receipt", false, ""},
		{"empty", "", false, ""},
		{"maybe is not true", "maybe|could be", false, "could be"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseVerdict(tc.answer)
			if got.IsReceipt != tc.wantValid {
				t.Errorf("IsReceipt = %v, want %v", got.IsReceipt, tc.wantValid)
			}
			if got.Reason != tc.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tc.wantReason)
			}
		})
	}
}

func TestParseReceiptDate(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	got, ok := ParseReceiptDate("10.03.2025", moscow)
	if !ok {
		t.Fatalf("expected parse success")
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, moscow)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, answer := range []string{"not_found", "NOT_FOUND", "", "  ", "2025-03-10", "32.01.2025", "вчера"} {
		if _, ok := ParseReceiptDate(answer, moscow); ok {
			t.Errorf("answer %q should not parse", answer)
		}
	}
}
