package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"psanalyze/internal/flags"
)

// SettingsFileName is the project settings file looked up in the working
// directory. It supplies defaults only: explicit CLI flags always win.
const SettingsFileName = ".psanalyze.toml"

// Settings is the decoded form of a .psanalyze.toml file.
type Settings struct {
	Filters settingsFilters `toml:"filters"`
	Output  settingsOutput  `toml:"output"`
	Runtime settingsRuntime `toml:"runtime"`

	meta toml.MetaData
}

type settingsFilters struct {
	Severity          string   `toml:"severity"`
	SecurityOnly      bool     `toml:"security-only"`
	StyleOnly         bool     `toml:"style-only"`
	PerformanceOnly   bool     `toml:"performance-only"`
	BestPracticesOnly bool     `toml:"best-practices-only"`
	DSCOnly           bool     `toml:"dsc-only"`
	CompatibilityOnly bool     `toml:"compatibility-only"`
	IncludeRules      []string `toml:"include-rules"`
	ExcludeRules      []string `toml:"exclude-rules"`
}

type settingsOutput struct {
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type settingsRuntime struct {
	Timeout string `toml:"timeout"`
}

// LoadSettings reads a settings file. A missing file is not an error; the
// returned Settings is nil in that case.
func LoadSettings(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	var s Settings
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	s.meta = meta
	return &s, nil
}

// Apply copies defined settings into cfg, skipping any field whose
// corresponding CLI flag was set explicitly. flagChanged reports whether the
// named flag was provided on the command line.
func (s *Settings) Apply(cfg *Config, flagChanged func(name string) bool) error {
	if s == nil {
		return nil
	}
	if flagChanged == nil {
		flagChanged = func(string) bool { return false }
	}

	applyString := func(flag string, defined bool, value string, dst *string) {
		if defined && !flagChanged(flag) {
			*dst = value
		}
	}
	applyBool := func(flag string, defined bool, value bool, dst *bool) {
		if defined && !flagChanged(flag) {
			*dst = value
		}
	}

	applyString(flags.FlagSeverity, s.defined("filters", "severity"), s.Filters.Severity, &cfg.Filters.Severity)
	applyBool(flags.FlagSecurityOnly, s.defined("filters", "security-only"), s.Filters.SecurityOnly, &cfg.Filters.SecurityOnly)
	applyBool(flags.FlagStyleOnly, s.defined("filters", "style-only"), s.Filters.StyleOnly, &cfg.Filters.StyleOnly)
	applyBool(flags.FlagPerformanceOnly, s.defined("filters", "performance-only"), s.Filters.PerformanceOnly, &cfg.Filters.PerformanceOnly)
	applyBool(flags.FlagBestPracticesOnly, s.defined("filters", "best-practices-only"), s.Filters.BestPracticesOnly, &cfg.Filters.BestPracticesOnly)
	applyBool(flags.FlagDSCOnly, s.defined("filters", "dsc-only"), s.Filters.DSCOnly, &cfg.Filters.DSCOnly)
	applyBool(flags.FlagCompatibilityOnly, s.defined("filters", "compatibility-only"), s.Filters.CompatibilityOnly, &cfg.Filters.CompatibilityOnly)

	if s.defined("filters", "include-rules") && !flagChanged(flags.FlagIncludeRules) {
		cfg.Filters.IncludeRules = s.Filters.IncludeRules
	}
	if s.defined("filters", "exclude-rules") && !flagChanged(flags.FlagExcludeRules) {
		cfg.Filters.ExcludeRules = s.Filters.ExcludeRules
	}

	applyString(flags.FlagOutputFormat, s.defined("output", "format"), s.Output.Format, &cfg.Output.Format)
	applyString(flags.FlagOutputFile, s.defined("output", "file"), s.Output.File, &cfg.Output.File)

	if s.defined("runtime", "timeout") && !flagChanged(flags.FlagTimeout) {
		d, err := time.ParseDuration(s.Runtime.Timeout)
		if err != nil {
			return fmt.Errorf("%s: invalid runtime.timeout %q: %w", SettingsFileName, s.Runtime.Timeout, err)
		}
		cfg.Runtime.Timeout = d
	}

	return nil
}

func (s *Settings) defined(keys ...string) bool {
	return s.meta.IsDefined(keys...)
}
