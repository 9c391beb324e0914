package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"psanalyze/internal/rules"
)

// SeverityEnvVar supplies the severity default when --severity is absent.
const SeverityEnvVar = "SEVERITY_LEVEL"

// DefaultTimeout bounds a single engine invocation.
const DefaultTimeout = 300 * time.Second

type Config struct {
	Inputs  Inputs
	Filters Filters
	Output  Output
	Runtime Runtime
}

type Inputs struct {
	// Files is the resolved list of PowerShell files to process. Positional
	// arguments are filtered to recognized extensions before they land here.
	Files []string

	// Recursive expands directory arguments to their whole tree instead of
	// only the files directly inside them (see --recursive).
	Recursive bool

	// Format reformats the files in place instead of analyzing them (see --format).
	Format bool
}

type Filters struct {
	// Severity is the minimum severity to report (see --severity).
	// Allowed values: All, Information, Warning, Error. All equals Information.
	// Defaults to the SEVERITY_LEVEL environment variable, then Warning.
	Severity string

	// Category filters. Multiple *-only flags combine with OR semantics.
	SecurityOnly      bool
	StyleOnly         bool
	PerformanceOnly   bool
	BestPracticesOnly bool
	DSCOnly           bool
	CompatibilityOnly bool

	// IncludeRules keeps only diagnostics for these rule names (see --include-rules).
	// Values may be provided as repeated flags and/or comma-separated lists.
	IncludeRules []string

	// ExcludeRules removes diagnostics for these rule names (see --exclude-rules).
	// Exclusion is applied after inclusion, so a rule in both sets is excluded.
	ExcludeRules []string
}

type Output struct {
	// Format selects the report encoding (see --output-format).
	// Allowed values: text, json, sarif.
	Format string `validate:"oneof=text json sarif"`

	// File writes the rendered report to this path instead of stdout
	// (see --output-file).
	File string
}

type Runtime struct {
	// Timeout bounds the engine subprocess for one invocation (see --timeout).
	Timeout time.Duration `validate:"gt=0"`

	// Verbose enables diagnostic logging of discovery and invocation.
	Verbose bool
}

var validate = validator.New()

func New() *Config {
	return &Config{
		Filters: Filters{
			Severity: DefaultSeverity(),
		},
		Output: Output{
			Format: "text",
		},
		Runtime: Runtime{
			Timeout: DefaultTimeout,
		},
	}
}

// DefaultSeverity returns the process-wide severity default sourced from
// SEVERITY_LEVEL. Invalid values silently fall back to Warning; an explicit
// --severity flag always wins over the environment.
func DefaultSeverity() string {
	env := strings.TrimSpace(os.Getenv(SeverityEnvVar))
	for _, name := range rules.SeverityNames {
		if strings.EqualFold(env, name) {
			return name
		}
	}
	return "Warning"
}

// Validate normalizes list and enum inputs in place and reports the first
// configuration problem. It is called once, before any engine invocation.
func (c *Config) Validate() error {
	c.Filters.IncludeRules = splitCommaList(c.Filters.IncludeRules)
	c.Filters.ExcludeRules = splitCommaList(c.Filters.ExcludeRules)

	sev := strings.TrimSpace(c.Filters.Severity)
	if sev == "" {
		sev = DefaultSeverity()
	}
	parsed, err := rules.ParseSeverity(sev)
	if err != nil {
		return err
	}
	// Keep the "All" spelling distinct from Information for display purposes;
	// both resolve to the same floor.
	if strings.EqualFold(sev, "All") {
		c.Filters.Severity = "All"
	} else {
		c.Filters.Severity = parsed.String()
	}

	c.Output.Format = normalizeEnumValue(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return err
	}

	return nil
}

// SeverityFloor returns the validated severity floor. Call Validate first.
func (c *Config) SeverityFloor() rules.Severity {
	sev, err := rules.ParseSeverity(c.Filters.Severity)
	if err != nil {
		return rules.SeverityWarning
	}
	return sev
}

// Categories returns the OR-combined set of requested rule categories.
// Empty means no category restriction.
func (f Filters) Categories() []rules.Category {
	var out []rules.Category
	if f.StyleOnly {
		out = append(out, rules.CategoryStyle)
	}
	if f.PerformanceOnly {
		out = append(out, rules.CategoryPerformance)
	}
	if f.SecurityOnly {
		out = append(out, rules.CategorySecurity)
	}
	if f.BestPracticesOnly {
		out = append(out, rules.CategoryBestPractices)
	}
	if f.DSCOnly {
		out = append(out, rules.CategoryDSC)
	}
	if f.CompatibilityOnly {
		out = append(out, rules.CategoryCompatibility)
	}
	return out
}

func fieldError(fe validator.FieldError) error {
	switch fe.StructNamespace() {
	case "Config.Output.Format":
		return fmt.Errorf("unsupported --output-format: %v (must be one of: text, json, sarif)", fe.Value())
	case "Config.Runtime.Timeout":
		return errors.New("--timeout must be > 0")
	}
	return fmt.Errorf("invalid configuration: %s", fe.StructNamespace())
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
