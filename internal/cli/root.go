package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"psanalyze/internal/config"
	"psanalyze/internal/engine"
	"psanalyze/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()

const rootHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
  SEVERITY_LEVEL   Default minimum severity when --severity is omitted.
                   One of All, Information, Warning, Error. Unrecognized
                   values fall back to Warning.
  GITHUB_ACTIONS   When set to "true", analysis output on stdout is followed
                   by GitHub workflow annotation commands so findings appear
                   inline in pull request diffs.

Settings file:
  If a ` + config.SettingsFileName + ` file exists in the working directory, its
  values are used as defaults. Explicit command-line flags always win.

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var rootCmd = &cobra.Command{
	Use:   "psanalyze [files or directories...]",
	Short: "Analyze and format PowerShell scripts with PSScriptAnalyzer",
	Long: `psanalyze runs PSScriptAnalyzer against PowerShell scripts and reports the
findings, or reformats the scripts in place with Invoke-Formatter.

The analysis itself runs inside a real PowerShell process. psanalyze locates
a PowerShell executable (pwsh, pwsh-lts, or powershell, in that order),
installs the PSScriptAnalyzer module on first use if it is missing, and
translates the module's findings into text, JSON, or SARIF reports.

Only PowerShell files are processed: .ps1, .psm1, and .psd1. Directories are
expanded to the PowerShell files directly inside them, or to the whole tree
with --recursive.

Exit codes:
  0 = no findings, nothing reformatted
  1 = findings reported, files reformatted, or formatting failed
  2 = invalid arguments or engine failure (PowerShell missing, timeout, crash)

Examples:
  # Analyze a script with the default Warning severity floor
  psanalyze build.ps1

  # Analyze a whole tree, errors only, as SARIF for code scanning upload
  psanalyze --recursive --severity Error --output-format sarif --output-file results.sarif src/

  # Security rules only
  psanalyze --security-only deploy.ps1

  # Reformat files in place
  psanalyze --format scripts/
`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}
		runRoot(cmd, args)
	},
}

func runRoot(cmd *cobra.Command, args []string) {
	settings, err := config.LoadSettings(config.SettingsFileName)
	if err != nil {
		fail(err)
	}
	if err := settings.Apply(cfg, cmd.Flags().Changed); err != nil {
		fail(err)
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	files, err := resolveFiles(args, cfg.Inputs.Recursive)
	if err != nil {
		fail(err)
	}
	cfg.Inputs.Files = files

	logger := newLogger(cfg.Runtime.Verbose)
	ctx := context.Background()

	psPath, err := engine.Discover(ctx, logger)
	if err != nil {
		fail(err)
	}
	fmt.Fprintf(os.Stderr, "Using PowerShell: %s\n", psPath)
	if err := engine.EnsureModule(ctx, psPath, logger); err != nil {
		fail(err)
	}

	// Status goes to stderr so stdout stays clean for json/sarif output.
	if len(files) > 0 {
		verb := "Analyzing"
		if cfg.Inputs.Format {
			verb = "Formatting"
		}
		fmt.Fprintf(os.Stderr, "%s %d PowerShell file(s)...\n", verb, len(files))
	}

	ps := &engine.PowerShell{
		Path:    psPath,
		Timeout: cfg.Runtime.Timeout,
		Logger:  logger,
	}
	os.Exit(engine.New(ps, logger).Run(ctx, cfg))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(2)
}

func newLogger(verbose bool) *log.Logger {
	logger := &log.Logger{
		Level: log.WarnLevel,
		Writer: &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: true,
		},
	}
	if verbose {
		logger.Level = log.DebugLevel
	}
	return logger
}

func init() {
	rootCmd.SetHelpTemplate(rootHelpTemplate)

	rootCmd.Flags().BoolVarP(&cfg.Inputs.Format, flags.FlagFormat, "f", false, "Reformat files in place with Invoke-Formatter instead of analyzing")
	rootCmd.Flags().BoolVarP(&cfg.Inputs.Recursive, flags.FlagRecursive, "r", false, "Descend into directories recursively")

	// Filters
	rootCmd.Flags().StringVarP(&cfg.Filters.Severity, flags.FlagSeverity, "s", cfg.Filters.Severity, "Minimum severity to report: All|Information|Warning|Error")
	rootCmd.Flags().BoolVar(&cfg.Filters.SecurityOnly, flags.FlagSecurityOnly, false, "Report security rules only (combinable with other --*-only flags)")
	rootCmd.Flags().BoolVar(&cfg.Filters.StyleOnly, flags.FlagStyleOnly, false, "Report style rules only (combinable with other --*-only flags)")
	rootCmd.Flags().BoolVar(&cfg.Filters.PerformanceOnly, flags.FlagPerformanceOnly, false, "Report performance rules only (combinable with other --*-only flags)")
	rootCmd.Flags().BoolVar(&cfg.Filters.BestPracticesOnly, flags.FlagBestPracticesOnly, false, "Report best-practice rules only (combinable with other --*-only flags)")
	rootCmd.Flags().BoolVar(&cfg.Filters.DSCOnly, flags.FlagDSCOnly, false, "Report DSC rules only (combinable with other --*-only flags)")
	rootCmd.Flags().BoolVar(&cfg.Filters.CompatibilityOnly, flags.FlagCompatibilityOnly, false, "Report compatibility rules only (combinable with other --*-only flags)")
	rootCmd.Flags().StringSliceVar(&cfg.Filters.IncludeRules, flags.FlagIncludeRules, nil, "Only report these rules (repeatable; comma-separated accepted)")
	rootCmd.Flags().StringSliceVar(&cfg.Filters.ExcludeRules, flags.FlagExcludeRules, nil, "Never report these rules (repeatable; comma-separated accepted; wins over --include-rules)")

	// Output
	rootCmd.Flags().StringVar(&cfg.Output.Format, flags.FlagOutputFormat, cfg.Output.Format, "Report format: text|json|sarif")
	rootCmd.Flags().StringVarP(&cfg.Output.File, flags.FlagOutputFile, "o", "", "Write the report to this file instead of stdout")

	// Runtime
	rootCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Engine timeout for a single run")
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (engine discovery, invocations, timings)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
