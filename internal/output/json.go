package output

import (
	"encoding/json"
	"io"

	"psanalyze/internal/rules"
)

// JSON renders the report as an indented JSON array. Every diagnostic object
// carries all seven keys; an empty report encodes as [] rather than null.
func JSON(w io.Writer, rep Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if rep.FormatMode {
		formats := rep.Formats
		if formats == nil {
			formats = []rules.FormatResult{}
		}
		return encoder.Encode(formats)
	}

	diags := rep.Diagnostics
	if diags == nil {
		diags = []rules.Diagnostic{}
	}
	return encoder.Encode(diags)
}
