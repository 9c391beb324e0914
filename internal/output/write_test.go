package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psanalyze/internal/config"
	"psanalyze/internal/rules"
)

func testConfig(t *testing.T, format, file string) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Output.Format = format
	cfg.Output.File = file
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestWriteToStdout(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "")
	rep := Report{Diagnostics: []rules.Diagnostic{
		{Rule: "R", Severity: rules.SeverityError, File: "a.ps1", Line: 1, Column: 1, Message: "m"},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(rep, testConfig(t, "text", ""), &buf))
	assert.Contains(t, buf.String(), "[R] a.ps1:1:1: m")
	assert.NotContains(t, buf.String(), "::error")
}

func TestWriteStdoutWithAnnotations(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	rep := Report{Diagnostics: []rules.Diagnostic{
		{Rule: "R", Severity: rules.SeverityError, File: "a.ps1", Line: 1, Column: 1, Message: "m"},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(rep, testConfig(t, "text", ""), &buf))
	assert.Contains(t, buf.String(), "::error file=a.ps1,line=1,col=1,title=R::m")
}

func TestWriteToFile(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "")
	path := filepath.Join(t.TempDir(), "reports", "out.json")
	rep := Report{Diagnostics: []rules.Diagnostic{
		{Rule: "R", Severity: rules.SeverityWarning, File: "a.ps1", Line: 1, Column: 1, Message: "m", Category: rules.CategoryStyle},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(rep, testConfig(t, "json", path), &buf))

	// The report body lands in the file, parent directories included.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []rules.Diagnostic
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rep.Diagnostics, decoded)

	// Stdout only carries the one-line summary.
	assert.Equal(t, "Found 1 issue(s); report written to "+path+"\n", buf.String())
}

func TestWriteNoAnnotationsInFormatMode(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	rep := Report{FormatMode: true, Formats: []rules.FormatResult{{File: "a.ps1", Changed: true}}}

	var buf bytes.Buffer
	require.NoError(t, Write(rep, testConfig(t, "text", ""), &buf))
	assert.NotContains(t, buf.String(), "::")
}

func TestWriteUnsupportedFormat(t *testing.T) {
	cfg := config.New()
	cfg.Output.Format = "yaml"

	var buf bytes.Buffer
	err := Write(Report{}, cfg, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
