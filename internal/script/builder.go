// Package script builds the PowerShell payloads sent to the analysis engine.
//
// Payload construction is pure string assembly: identical inputs produce
// byte-identical payloads, which keeps golden-file testing possible and makes
// engine invocations reproducible.
package script

import (
	"errors"
	"fmt"
	"strings"
)

// Extensions are the PowerShell source extensions the engine recognizes.
var Extensions = []string{".ps1", ".psm1", ".psd1"}

// ErrNoFiles is returned when a payload is requested for zero target files.
// An empty-but-valid payload would silently analyze nothing, so this is
// rejected up front.
var ErrNoFiles = errors.New("no target files")

// Analysis builds the payload for analyze mode.
//
// The payload requests every severity from the engine (filtering happens
// locally, after parsing) and emits one JSON record per diagnostic with
// discrete RuleName/Severity/ScriptPath/Line/Column/Message fields. Severity
// is stringified inside the engine so the record shape does not depend on the
// engine's enum serialization. The script exits 1 when diagnostics were found,
// 0 when clean, and 250 on an engine-level exception; the parser, not the exit
// code, decides what the output means.
func Analysis(files []string) (string, error) {
	array, err := fileArray(files)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`$ErrorActionPreference = 'Stop'
try {
    $files = @(%s)
    $results = @()
    foreach ($file in $files) {
        $found = Invoke-ScriptAnalyzer -Path $file
        if ($found) {
            $results += $found
        }
    }
    $records = @($results | Select-Object -Property RuleName, @{Name='Severity';Expression={$_.Severity.ToString()}}, ScriptPath, Line, Column, Message)
    if ($records.Count -gt 0) {
        ConvertTo-Json -InputObject $records -Depth 3
        exit 1
    }
    exit 0
} catch {
    Write-Error "engine failure: $($_.Exception.Message)"
    exit 250
}
`, array), nil
}

// Format builds the payload for format mode.
//
// Each target file is rewritten with its canonical formatting when needed and
// reported with one status line: "Formatted:", "Unchanged:", or
// "Failed: <path>: <reason>". Status lines go to stdout so the format parser
// never has to scrape stderr.
func Format(files []string) (string, error) {
	array, err := fileArray(files)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`$files = @(%s)
$failed = $false
foreach ($file in $files) {
    try {
        $original = Get-Content -Path $file -Raw
        $formatted = Invoke-Formatter -ScriptDefinition $original
        if ($formatted -ne $original) {
            Set-Content -Path $file -Value $formatted -NoNewline
            Write-Output "Formatted: $file"
        } else {
            Write-Output "Unchanged: $file"
        }
    } catch {
        Write-Output "Failed: ${file}: $($_.Exception.Message)"
        $failed = $true
    }
}
if ($failed) { exit 1 } else { exit 0 }
`, array), nil
}

// fileArray renders the target files as a PowerShell array literal body.
// Every path is single-quoted with embedded quotes doubled, so a hostile
// filename cannot terminate the string and inject commands.
func fileArray(files []string) (string, error) {
	if len(files) == 0 {
		return "", ErrNoFiles
	}
	quoted := make([]string, len(files))
	for i, f := range files {
		quoted[i] = "'" + escapePath(f) + "'"
	}
	return strings.Join(quoted, ","), nil
}

func escapePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
