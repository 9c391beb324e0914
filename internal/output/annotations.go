package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"psanalyze/internal/rules"
)

// annotationType maps diagnostic severities to workflow annotation commands.
func annotationType(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "error"
	case rules.SeverityWarning:
		return "warning"
	case rules.SeverityInformation:
		return "notice"
	}
	return "error"
}

// AnnotationsEnabled reports whether the CI annotation side channel is active.
// Annotations are emitted when the report destination is stdout and the
// process runs inside a GitHub Actions workflow.
func AnnotationsEnabled() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Annotations writes one workflow annotation line per diagnostic:
//
//	::error file=script.ps1,line=3,col=1,title=PSAvoidUsingWriteHost::message
//
// This is a side channel independent of the chosen report encoding.
func Annotations(w io.Writer, diags []rules.Diagnostic) error {
	for _, d := range diags {
		_, err := fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d,title=%s::%s\n",
			annotationType(d.Severity),
			escapeAnnotationProperty(d.File),
			d.Line,
			d.Column,
			escapeAnnotationProperty(d.Rule),
			escapeAnnotationData(d.Message),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Workflow command escaping: property values additionally escape the
// separators that would break the key=value list.
func escapeAnnotationData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

func escapeAnnotationProperty(s string) string {
	s = escapeAnnotationData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
