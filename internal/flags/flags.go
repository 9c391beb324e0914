package flags

// Package flags defines canonical CLI flag names shared across the CLI and
// config layers. Keeping these as constants helps avoid drift between Cobra
// flag wiring and other code paths that reference flags (settings-file
// precedence checks, error messages).
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Inputs
	FlagFormat    = "format"
	FlagRecursive = "recursive"

	// Filters
	FlagSeverity          = "severity"
	FlagSecurityOnly      = "security-only"
	FlagStyleOnly         = "style-only"
	FlagPerformanceOnly   = "performance-only"
	FlagBestPracticesOnly = "best-practices-only"
	FlagDSCOnly           = "dsc-only"
	FlagCompatibilityOnly = "compatibility-only"
	FlagIncludeRules      = "include-rules"
	FlagExcludeRules      = "exclude-rules"

	// Output
	FlagOutputFormat = "output-format"
	FlagOutputFile   = "output-file"

	// Runtime
	FlagTimeout = "timeout"
	FlagVerbose = "verbose"
)
