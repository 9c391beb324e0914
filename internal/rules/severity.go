package rules

import (
	"fmt"
	"strings"
)

// Severity is the importance of a diagnostic. Higher values are more severe,
// which is what makes the severity floor hierarchical: a floor keeps its own
// level and every level above it.
type Severity int

const (
	SeverityInformation Severity = iota
	SeverityWarning
	SeverityError
)

// SeverityNames lists the accepted --severity spellings. "All" is an alias for
// Information (report everything).
var SeverityNames = []string{"All", "Information", "Warning", "Error"}

func (s Severity) String() string {
	switch s {
	case SeverityInformation:
		return "Information"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	}
	return "Unknown"
}

// AtLeast reports whether s meets the given floor.
func (s Severity) AtLeast(floor Severity) bool {
	return s >= floor
}

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(raw string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "all", "information":
		return SeverityInformation, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityInformation, fmt.Errorf("unsupported severity: %s (must be one of: All, Information, Warning, Error)", raw)
}

// MarshalJSON encodes the severity by name so machine output stays readable
// and round-trips through UnmarshalJSON.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Severity) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	sev, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}
