package rules

// Diagnostic is one reported issue: a rule violation with its location,
// severity, and message. Diagnostics are created by the parser, filtered, and
// rendered; they are never mutated after creation.
type Diagnostic struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

// FormatResult is the per-file outcome of a Format run. Format results bypass
// the filter pipeline entirely and flow straight to the renderer.
type FormatResult struct {
	File    string `json:"file"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether formatting this file failed.
func (r FormatResult) Failed() bool {
	return r.Error != ""
}
