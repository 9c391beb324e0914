package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psanalyze/internal/config"
	"psanalyze/internal/rules"
)

func diag(rule string, sev rules.Severity, cat rules.Category) rules.Diagnostic {
	return rules.Diagnostic{
		Rule:     rule,
		Severity: sev,
		File:     "test.ps1",
		Line:     1,
		Column:   1,
		Message:  "message for " + rule,
		Category: cat,
	}
}

func TestApplySeverityFloor(t *testing.T) {
	diags := []rules.Diagnostic{
		diag("Info", rules.SeverityInformation, rules.CategoryStyle),
		diag("Warn", rules.SeverityWarning, rules.CategoryStyle),
		diag("Err", rules.SeverityError, rules.CategoryStyle),
	}

	tests := []struct {
		name  string
		floor rules.Severity
		want  []string
	}{
		{name: "information floor keeps everything", floor: rules.SeverityInformation, want: []string{"Info", "Warn", "Err"}},
		{name: "warning floor drops information", floor: rules.SeverityWarning, want: []string{"Warn", "Err"}},
		{name: "error floor keeps errors only", floor: rules.SeverityError, want: []string{"Err"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(diags, Criteria{Floor: tt.floor})
			assert.Equal(t, tt.want, ruleNames(got))
		})
	}
}

func TestApplyResultIsSubsetInOrder(t *testing.T) {
	diags := []rules.Diagnostic{
		diag("A", rules.SeverityError, rules.CategorySecurity),
		diag("B", rules.SeverityWarning, rules.CategoryStyle),
		diag("C", rules.SeverityError, rules.CategoryBestPractices),
		diag("D", rules.SeverityInformation, rules.CategorySecurity),
	}

	got := Apply(diags, Criteria{Floor: rules.SeverityWarning})
	// Output preserves engine emission order and every element comes from the
	// input unchanged.
	assert.Equal(t, []string{"A", "B", "C"}, ruleNames(got))
	for i, d := range got {
		assert.Contains(t, diags, d, i)
	}
}

func TestApplyCategoryOR(t *testing.T) {
	diags := []rules.Diagnostic{
		diag("Sec", rules.SeverityWarning, rules.CategorySecurity),
		diag("Sty", rules.SeverityWarning, rules.CategoryStyle),
		diag("Perf", rules.SeverityWarning, rules.CategoryPerformance),
	}

	got := Apply(diags, Criteria{
		Categories: []rules.Category{rules.CategorySecurity, rules.CategoryPerformance},
	})
	assert.Equal(t, []string{"Sec", "Perf"}, ruleNames(got))
}

func TestApplyIncludeRules(t *testing.T) {
	diags := []rules.Diagnostic{
		diag("Keep", rules.SeverityWarning, rules.CategoryStyle),
		diag("Drop", rules.SeverityError, rules.CategoryStyle),
	}

	got := Apply(diags, Criteria{Include: []string{"Keep"}})
	assert.Equal(t, []string{"Keep"}, ruleNames(got))
}

func TestApplyExcludeWinsOverInclude(t *testing.T) {
	diags := []rules.Diagnostic{
		diag("Both", rules.SeverityError, rules.CategorySecurity),
		diag("Other", rules.SeverityError, rules.CategorySecurity),
	}

	got := Apply(diags, Criteria{
		Include: []string{"Both", "Other"},
		Exclude: []string{"Both"},
	})
	assert.Equal(t, []string{"Other"}, ruleNames(got))
}

func TestApplyCombinedCriteria(t *testing.T) {
	diags := []rules.Diagnostic{
		diag("SecErr", rules.SeverityError, rules.CategorySecurity),
		diag("SecInfo", rules.SeverityInformation, rules.CategorySecurity),
		diag("StyErr", rules.SeverityError, rules.CategoryStyle),
		diag("SecErrExcluded", rules.SeverityError, rules.CategorySecurity),
	}

	got := Apply(diags, Criteria{
		Floor:      rules.SeverityWarning,
		Categories: []rules.Category{rules.CategorySecurity},
		Exclude:    []string{"SecErrExcluded"},
	})
	assert.Equal(t, []string{"SecErr"}, ruleNames(got))
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(nil, Criteria{Floor: rules.SeverityError, Include: []string{"X"}})
	assert.Empty(t, got)
}

func TestApplyEverythingFilteredOut(t *testing.T) {
	diags := []rules.Diagnostic{
		diag("A", rules.SeverityInformation, rules.CategoryStyle),
	}
	got := Apply(diags, Criteria{Floor: rules.SeverityError})
	assert.Empty(t, got)
}

func TestFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Filters.Severity = "Error"
	cfg.Filters.SecurityOnly = true
	cfg.Filters.IncludeRules = []string{"A"}
	cfg.Filters.ExcludeRules = []string{"B"}
	require.NoError(t, cfg.Validate())

	c := FromConfig(cfg)
	assert.Equal(t, rules.SeverityError, c.Floor)
	assert.Equal(t, []rules.Category{rules.CategorySecurity}, c.Categories)
	assert.Equal(t, []string{"A"}, c.Include)
	assert.Equal(t, []string{"B"}, c.Exclude)
}

func ruleNames(diags []rules.Diagnostic) []string {
	var names []string
	for _, d := range diags {
		names = append(names, d.Rule)
	}
	return names
}
