package rules

import "strings"

// Category is a coarse grouping of PSScriptAnalyzer rules used for filtering.
type Category string

const (
	CategoryStyle         Category = "Style"
	CategoryPerformance   Category = "Performance"
	CategorySecurity      Category = "Security"
	CategoryBestPractices Category = "BestPractices"
	CategoryDSC           Category = "DSC"
	CategoryCompatibility Category = "Compatibility"
)

// Categories lists all known categories in display order.
var Categories = []Category{
	CategoryStyle,
	CategoryPerformance,
	CategorySecurity,
	CategoryBestPractices,
	CategoryDSC,
	CategoryCompatibility,
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(raw string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(raw)) {
			return c, true
		}
	}
	return "", false
}

// CategoryOf resolves a rule name to its category. Rules absent from the
// catalog default to BestPractices.
func CategoryOf(rule string) Category {
	if info, ok := catalog[rule]; ok {
		return info.Category
	}
	// DSC rules share a distinctive prefix; keep them grouped even when a
	// specific rule is missing from the catalog.
	if strings.HasPrefix(rule, "PSDSC") {
		return CategoryDSC
	}
	return CategoryBestPractices
}
