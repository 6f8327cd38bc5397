package server

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/introlaser/shop-bot/internal/common"
)

// specificationsSchema constrains the free-form product specifications
// document: flat string keys with scalar values, nothing nested.
const specificationsSchema = `{
	"type": "object",
	"maxProperties": 50,
	"propertyNames": { "minLength": 1, "maxLength": 64 },
	"additionalProperties": {
		"type": ["string", "number", "boolean"],
		"maxLength": 512
	}
}`

var compiledSpecSchema = jsonschema.MustCompileString("specifications.json", specificationsSchema)

// ValidateSpecifications checks an admin-supplied specifications map.
// A nil map is valid; products without specifications are common.
func ValidateSpecifications(specs map[string]any) error {
	if specs == nil {
		return nil
	}
	if err := compiledSpecSchema.Validate(map[string]any(specs)); err != nil {
		msg := strings.TrimSpace(err.Error())
		return common.NewAppError("BAD_SPECIFICATIONS", msg, common.ErrValidation)
	}
	return nil
}
