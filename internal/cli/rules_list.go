package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"psanalyze/internal/rules"
)

var (
	rulesListQuiet    bool
	rulesListCategory string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List and inspect PSScriptAnalyzer rules",
	Long: `Inspect the PSScriptAnalyzer rules psanalyze knows about.

Rule names can be passed to --include-rules and --exclude-rules, and each
rule's category drives the --security-only, --style-only and related filters.

Examples:
  # List all known rules
  psanalyze rules list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known rules",
	Long: `List the PSScriptAnalyzer rules known to this build, sorted by name.

Examples:
  psanalyze rules list
  psanalyze rules list --category Security
  psanalyze rules list -q
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var list []rules.Info
		if rulesListCategory != "" {
			cat, ok := rules.ParseCategory(rulesListCategory)
			if !ok {
				return fmt.Errorf("unknown category: %s", rulesListCategory)
			}
			list = rules.ListByCategory(cat)
		} else {
			list = rules.List()
		}

		for _, info := range list {
			if rulesListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), info.Name)
			} else {
				printRule(cmd.OutOrStdout(), info)
			}
		}
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [rule-name]",
	Short: "Show details of a specific rule",
	Long: `Show details of a specific rule by name.

Examples:
  psanalyze rules show PSAvoidUsingPlainTextForPassword
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, ok := rules.Lookup(args[0])
		if !ok {
			return fmt.Errorf("rule not found: %s", args[0])
		}
		printRule(cmd.OutOrStdout(), info)
		return nil
	},
}

func printRule(w io.Writer, info rules.Info) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "RULE: %s\n", info.Name)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "Category: %s\n", info.Category)
	fmt.Fprintln(w, info.Description)
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesListCmd.Flags().BoolVarP(&rulesListQuiet, "quiet", "q", false, "Only print rule names")
	rulesListCmd.Flags().StringVar(&rulesListCategory, "category", "", "Only list rules in this category")
	rulesCmd.AddCommand(rulesShowCmd)
}
