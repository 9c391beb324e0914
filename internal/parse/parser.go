// Package parse converts raw engine output into structured diagnostics.
//
// The analyze payload asks the engine for JSON records, so parsing here is
// JSON decoding plus per-record normalization, never regex scraping. A single
// bad record is skipped with a warning instead of aborting the batch; only a
// stream that cannot be decoded at all is an error (the orchestrator surfaces
// that as an engine failure).
package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"psanalyze/internal/rules"
)

// record mirrors the field names the analysis payload selects from
// Invoke-ScriptAnalyzer output. Severity is kept raw because PowerShell may
// serialize the enum as either a name or a number depending on version.
type record struct {
	RuleName   string          `json:"RuleName"`
	Severity   json.RawMessage `json:"Severity"`
	ScriptPath string          `json:"ScriptPath"`
	Line       *int            `json:"Line"`
	Column     *int            `json:"Column"`
	Message    string          `json:"Message"`
}

// Diagnostics parses analyze-mode engine output.
//
// Returns the parsed diagnostics in engine emission order, plus warnings for
// records that had to be skipped or defaulted. A non-empty stream that is not
// JSON at all yields an error.
func Diagnostics(stdout string) ([]rules.Diagnostic, []string, error) {
	raw := strings.TrimSpace(stdout)
	if raw == "" {
		return nil, nil, nil
	}

	// ConvertTo-Json emits an object rather than a one-element array in some
	// engine versions; accept both shapes.
	var elements []json.RawMessage
	if strings.HasPrefix(raw, "{") {
		elements = []json.RawMessage{json.RawMessage(raw)}
	} else if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		return nil, nil, fmt.Errorf("engine output is not a JSON record stream: %w", err)
	}

	var diags []rules.Diagnostic
	var warnings []string
	for i, el := range elements {
		var rec record
		if err := json.Unmarshal(el, &rec); err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped malformed record %d: %v", i+1, err))
			continue
		}
		if rec.RuleName == "" && rec.Message == "" {
			warnings = append(warnings, fmt.Sprintf("skipped record %d: no rule name or message", i+1))
			continue
		}
		diags = append(diags, rules.Diagnostic{
			Rule:     rec.RuleName,
			Severity: parseSeverityField(rec.Severity),
			File:     rec.ScriptPath,
			Line:     positionOrDefault(rec.Line),
			Column:   positionOrDefault(rec.Column),
			Message:  rec.Message,
			Category: rules.CategoryOf(rec.RuleName),
		})
	}
	return diags, warnings, nil
}

// parseSeverityField decodes a severity that may be a name ("Warning") or the
// engine's numeric enum (0=Information, 1=Warning, 2=Error, 3=ParseError).
// Unrecognized values fall back to Warning.
func parseSeverityField(raw json.RawMessage) rules.Severity {
	if len(raw) == 0 {
		return rules.SeverityWarning
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if sev, perr := rules.ParseSeverity(name); perr == nil {
			return sev
		}
		return rules.SeverityWarning
	}
	var num int
	if err := json.Unmarshal(raw, &num); err == nil {
		switch num {
		case 0:
			return rules.SeverityInformation
		case 1:
			return rules.SeverityWarning
		case 2, 3:
			return rules.SeverityError
		}
	}
	return rules.SeverityWarning
}

// positionOrDefault defaults missing or non-positive line/column values to 1
// rather than failing the record.
func positionOrDefault(v *int) int {
	if v == nil || *v < 1 {
		return 1
	}
	return *v
}

// Format status line markers emitted by the format payload.
const (
	formattedPrefix = "Formatted: "
	unchangedPrefix = "Unchanged: "
	failedPrefix    = "Failed: "
)

// FormatResults parses format-mode engine output. Status lines map to one
// FormatResult per file; anything else (module banners, progress noise) is
// ignored.
func FormatResults(stdout string) []rules.FormatResult {
	var out []rules.FormatResult
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, formattedPrefix):
			out = append(out, rules.FormatResult{File: strings.TrimPrefix(line, formattedPrefix), Changed: true})
		case strings.HasPrefix(line, unchangedPrefix):
			out = append(out, rules.FormatResult{File: strings.TrimPrefix(line, unchangedPrefix)})
		case strings.HasPrefix(line, failedPrefix):
			rest := strings.TrimPrefix(line, failedPrefix)
			file, reason, ok := strings.Cut(rest, ": ")
			if !ok {
				file = rest
				reason = "formatting failed"
			}
			out = append(out, rules.FormatResult{File: file, Error: reason})
		}
	}
	return out
}
