package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisDeterministic(t *testing.T) {
	files := []string{"a.ps1", "sub/b.psm1", "c.psd1"}

	first, err := Analysis(files)
	require.NoError(t, err)
	second, err := Analysis(files)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce byte-identical payloads")
}

func TestAnalysisPayloadShape(t *testing.T) {
	payload, err := Analysis([]string{"script.ps1"})
	require.NoError(t, err)

	assert.Contains(t, payload, "Invoke-ScriptAnalyzer")
	assert.Contains(t, payload, "ConvertTo-Json")
	assert.Contains(t, payload, "$_.Severity.ToString()")
	assert.Contains(t, payload, "@('script.ps1')")
	// No severity restriction in the payload; filtering happens after parsing.
	assert.NotContains(t, payload, "-Severity")
}

func TestAnalysisNoFiles(t *testing.T) {
	_, err := Analysis(nil)
	assert.ErrorIs(t, err, ErrNoFiles)

	_, err = Analysis([]string{})
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestFormatPayloadShape(t *testing.T) {
	payload, err := Format([]string{"a.ps1", "b.psm1"})
	require.NoError(t, err)

	assert.Contains(t, payload, "Invoke-Formatter")
	assert.Contains(t, payload, "@('a.ps1','b.psm1')")
	assert.Contains(t, payload, `"Formatted: $file"`)
	assert.Contains(t, payload, `"Unchanged: $file"`)
	assert.Contains(t, payload, "Failed: ")
}

func TestFormatNoFiles(t *testing.T) {
	_, err := Format(nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestFileArrayEscaping(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{
			name:  "plain paths",
			files: []string{"a.ps1", "b.ps1"},
			want:  "'a.ps1','b.ps1'",
		},
		{
			name:  "embedded single quote cannot break out",
			files: []string{"it's.ps1"},
			want:  "'it''s.ps1'",
		},
		{
			name:  "injection attempt stays quoted",
			files: []string{"x'; Remove-Item -Recurse / #.ps1"},
			want:  "'x''; Remove-Item -Recurse / #.ps1'",
		},
		{
			name:  "spaces and unicode pass through",
			files: []string{"my scripts/héllo.ps1"},
			want:  "'my scripts/héllo.ps1'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fileArray(tt.files)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
