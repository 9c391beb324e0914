// Package output renders filtered diagnostics into the requested encoding
// (text, JSON, SARIF) and writes them to the requested destination.
package output

import "psanalyze/internal/rules"

// Report is the rendering input for one invocation: the filtered diagnostic
// sequence (analysis) or the per-file format results (format mode), plus any
// parse warnings attached along the way. Diagnostic order is engine emission
// order and is preserved by every encoding.
type Report struct {
	Diagnostics []rules.Diagnostic
	Formats     []rules.FormatResult
	Warnings    []string

	// TargetFiles are the analyzed inputs, recorded as SARIF artifacts.
	TargetFiles []string

	// FormatMode selects format-result rendering over diagnostic rendering.
	FormatMode bool
}

// ExitCode computes the process exit status for this report: 0 when there is
// nothing to report (or formatting changed nothing), 1 when diagnostics were
// found, files were reformatted, or formatting failed. Configuration and
// engine errors exit 2 and never reach rendering.
func (r Report) ExitCode() int {
	if r.FormatMode {
		for _, f := range r.Formats {
			if f.Changed || f.Failed() {
				return 1
			}
		}
		return 0
	}
	if len(r.Diagnostics) > 0 {
		return 1
	}
	return 0
}

// countBySeverity tallies diagnostics per severity.
func (r Report) countBySeverity() map[rules.Severity]int {
	counts := make(map[rules.Severity]int, 3)
	for _, d := range r.Diagnostics {
		counts[d.Severity]++
	}
	return counts
}
