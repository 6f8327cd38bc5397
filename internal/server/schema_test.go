package server

import (
	"errors"
	"strings"
	"testing"

	"github.com/introlaser/shop-bot/internal/common"
)

func TestValidateSpecifications(t *testing.T) {
	valid := map[string]any{
		"Цвет":     "черный",
		"Вес":      0.25,
		"Гарантия": true,
	}
	if err := ValidateSpecifications(valid); err != nil {
		t.Errorf("flat scalar map must pass: %v", err)
	}
	if err := ValidateSpecifications(nil); err != nil {
		t.Errorf("nil specifications must pass: %v", err)
	}
}

func TestValidateSpecifications_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		specs map[string]any
	}{
		{"nested object", map[string]any{"размеры": map[string]any{"ширина": 10}}},
		{"array value", map[string]any{"цвета": []any{"черный", "белый"}}},
		{"empty key", map[string]any{"": "x"}},
		{"oversized value", map[string]any{"описание": strings.Repeat("а", 600)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSpecifications(tc.specs)
			if err == nil {
				t.Fatalf("expected a validation error")
			}
			if !errors.Is(err, common.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}
