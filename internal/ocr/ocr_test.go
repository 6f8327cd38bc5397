package ocr

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

type fakeRunner struct {
	calls   [][]string
	outputs []string
	errs    []error
}

func (f *fakeRunner) Run(_ context.Context, name string, _ *slog.Logger, args ...string) ([]byte, error) {
	i := len(f.calls)
	f.calls = append(f.calls, append([]string{name}, args...))
	var out string
	if i < len(f.outputs) {
		out = f.outputs[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return []byte(out), err
}

func newTestExtractor(r Runner) *Extractor {
	e := NewExtractor(Config{Language: "rus"}, slog.Default())
	e.runner = r
	return e
}

func TestExtract_LocaleModelFirst(t *testing.T) {
	r := &fakeRunner{outputs: []string{"ИП Курников А.В.\nИтого: 1500 ₽"}}
	e := newTestExtractor(r)

	res, err := e.Extract(context.Background(), "/tmp/normalized.jpg")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Retried {
		t.Errorf("expected no retry when locale model found text")
	}
	if res.Language != "rus" {
		t.Errorf("expected rus attempt, got %q", res.Language)
	}
	if len(r.calls) != 1 {
		t.Fatalf("expected one tesseract call, got %d", len(r.calls))
	}
	if !hasArgPair(r.calls[0], "-l", "rus") {
		t.Errorf("expected -l rus in args, got %v", r.calls[0])
	}
}

func TestExtract_RetriesGenericOnEmpty(t *testing.T) {
	r := &fakeRunner{outputs: []string{"   \n  ", "Total: 1500"}}
	e := newTestExtractor(r)

	res, err := e.Extract(context.Background(), "/tmp/normalized.jpg")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.Retried {
		t.Errorf("expected generic retry")
	}
	if res.Text != "Total: 1500" {
		t.Errorf("expected retry text, got %q", res.Text)
	}
	if len(r.calls) != 2 {
		t.Fatalf("expected two tesseract calls, got %d", len(r.calls))
	}
	if hasArgPair(r.calls[1], "-l", "rus") {
		t.Errorf("generic retry must not carry a language hint, got %v", r.calls[1])
	}
}

func TestExtract_EngineFailureDegradesToEmpty(t *testing.T) {
	r := &fakeRunner{errs: []error{errors.New("exit status 1"), errors.New("exit status 1")}}
	e := newTestExtractor(r)

	res, err := e.Extract(context.Background(), "/tmp/normalized.jpg")
	if err != nil {
		t.Fatalf("engine failure must not be an error, got %v", err)
	}
	if res.Text != "" {
		t.Errorf("expected empty text, got %q", res.Text)
	}
	if !res.Retried {
		t.Errorf("expected the generic retry to have been attempted")
	}
}

func TestExtract_CancelledContextIsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &fakeRunner{errs: []error{ctx.Err()}}
	e := newTestExtractor(r)

	if _, err := e.Extract(ctx, "/tmp/normalized.jpg"); err == nil {
		t.Fatalf("expected context error to propagate")
	}
}

func TestNormalize(t *testing.T) {
	in := "ЧЕК\t№42\r\n----------\nИтого:   1500 ₽   \n\n\n\nСпасибо"
	got := Normalize(in)
	want := "ЧЕК №42\n\nИтого: 1500 ₽\n\nСпасибо"
	if got != want {
		t.Errorf("Normalize:\n got %q\nwant %q", got, want)
	}
	if Normalize("") != "" {
		t.Errorf("empty input must stay empty")
	}
	if Normalize("  \n\t\n  ") != "" {
		t.Errorf("whitespace-only input must normalize to empty")
	}
}

func hasArgPair(call []string, flag, value string) bool {
	for i := 0; i < len(call)-1; i++ {
		if call[i] == flag && call[i+1] == value {
			return true
		}
	}
	return false
}
