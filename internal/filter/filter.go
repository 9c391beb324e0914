// Package filter reduces a diagnostic sequence to the subset that should be
// reported, preserving engine emission order.
package filter

import (
	"psanalyze/internal/config"
	"psanalyze/internal/rules"
)

// Criteria is the validated filtering view of one analysis request.
type Criteria struct {
	// Floor keeps diagnostics at this severity and above.
	Floor rules.Severity

	// Categories, when non-empty, keeps only diagnostics whose category is in
	// the set (OR semantics across entries).
	Categories []rules.Category

	// Include, when non-empty, keeps only diagnostics for these rule names.
	Include []string

	// Exclude removes diagnostics for these rule names. Applied last, so a
	// rule present in both Include and Exclude is excluded.
	Exclude []string
}

// FromConfig builds filter criteria from a validated config.
func FromConfig(cfg *config.Config) Criteria {
	return Criteria{
		Floor:      cfg.SeverityFloor(),
		Categories: cfg.Filters.Categories(),
		Include:    cfg.Filters.IncludeRules,
		Exclude:    cfg.Filters.ExcludeRules,
	}
}

// Apply filters diags against c. Filters narrow the set in a fixed order:
// severity floor, category, include-rules, exclude-rules. An empty result is
// a valid outcome, not an error.
func Apply(diags []rules.Diagnostic, c Criteria) []rules.Diagnostic {
	categories := make(map[rules.Category]bool, len(c.Categories))
	for _, cat := range c.Categories {
		categories[cat] = true
	}
	include := make(map[string]bool, len(c.Include))
	for _, r := range c.Include {
		include[r] = true
	}
	exclude := make(map[string]bool, len(c.Exclude))
	for _, r := range c.Exclude {
		exclude[r] = true
	}

	var filtered []rules.Diagnostic
	for _, d := range diags {
		// Severity floor
		if !d.Severity.AtLeast(c.Floor) {
			continue
		}

		// Category (OR across requested categories)
		if len(categories) > 0 && !categories[d.Category] {
			continue
		}

		// Include rules
		if len(include) > 0 && !include[d.Rule] {
			continue
		}

		// Exclude rules: last, so exclusion always wins over inclusion
		if exclude[d.Rule] {
			continue
		}

		filtered = append(filtered, d)
	}
	return filtered
}
