package constants

import "strings"

// Category is a product catalog section.
type Category string

const (
	Cosmetics   Category = "cosmetics"
	Electronics Category = "electronics"
)

var allCategories = []Category{
	Cosmetics,
	Electronics,
}

func CategoriesAsStrings() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// ParseCategory matches user/admin input against the known categories.
func ParseCategory(input string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}
	return "", false
}
