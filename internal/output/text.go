package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"psanalyze/internal/rules"
)

var severityColors = map[rules.Severity]*color.Color{
	rules.SeverityError:       color.New(color.FgRed),
	rules.SeverityWarning:     color.New(color.FgYellow),
	rules.SeverityInformation: color.New(color.FgCyan),
}

// textSeverityOrder groups output most-severe first.
var textSeverityOrder = []rules.Severity{
	rules.SeverityError,
	rules.SeverityWarning,
	rules.SeverityInformation,
}

// Text renders the human-readable report: one diagnostic per line, grouped by
// severity (most severe first, engine order within each group), colored by
// severity.
func Text(w io.Writer, rep Report) error {
	if rep.FormatMode {
		return textFormatResults(w, rep)
	}

	for _, sev := range textSeverityOrder {
		for _, d := range rep.Diagnostics {
			if d.Severity != sev {
				continue
			}
			c := severityColors[sev]
			if _, err := c.Fprintf(w, "%s:", d.Severity); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, " [%s] %s:%d:%d: %s\n", d.Rule, d.File, d.Line, d.Column, d.Message); err != nil {
				return err
			}
		}
	}

	if err := textWarnings(w, rep.Warnings); err != nil {
		return err
	}

	if len(rep.Diagnostics) == 0 {
		_, err := color.New(color.FgGreen).Fprintln(w, "No issues found")
		return err
	}
	_, err := color.New(color.FgYellow).Fprintf(w, "Found %d issue(s)\n", len(rep.Diagnostics))
	return err
}

func textFormatResults(w io.Writer, rep Report) error {
	var changed, failed int
	for _, f := range rep.Formats {
		switch {
		case f.Failed():
			failed++
			if _, err := color.New(color.FgRed).Fprintf(w, "failed: %s: %s\n", f.File, f.Error); err != nil {
				return err
			}
		case f.Changed:
			changed++
			if _, err := fmt.Fprintf(w, "formatted: %s\n", f.File); err != nil {
				return err
			}
		}
	}

	if err := textWarnings(w, rep.Warnings); err != nil {
		return err
	}

	switch {
	case failed > 0:
		_, err := color.New(color.FgRed).Fprintf(w, "%d file(s) reformatted, %d failed\n", changed, failed)
		return err
	case changed > 0:
		_, err := color.New(color.FgYellow).Fprintf(w, "%d file(s) reformatted\n", changed)
		return err
	}
	_, err := color.New(color.FgGreen).Fprintln(w, "All files already formatted")
	return err
}

func textWarnings(w io.Writer, warnings []string) error {
	for _, warn := range warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}
