package output

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"psanalyze/internal/rules"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-" + sarifVersion + ".json"

	toolName           = "PSScriptAnalyzer"
	toolSemanticVer    = "1.x"
	toolInformationURI = "https://github.com/PowerShell/PSScriptAnalyzer"
)

// Minimal SARIF 2.1.0 model, shaped to what code-scanning consumers read.
type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool        `json:"tool"`
	AutomationDetails *sarifAutomation `json:"automationDetails,omitempty"`
	Results           []sarifResult    `json:"results"`
	Artifacts         []sarifArtifact  `json:"artifacts,omitempty"`
}

type sarifAutomation struct {
	GUID string `json:"guid"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name            string      `json:"name"`
	SemanticVersion string      `json:"semanticVersion"`
	InformationURI  string      `json:"informationUri"`
	Rules           []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string              `json:"id"`
	ShortDescription sarifMessage        `json:"shortDescription"`
	Properties       sarifRuleProperties `json:"properties"`
}

type sarifRuleProperties struct {
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID     string                `json:"ruleId"`
	Level      string                `json:"level"`
	Message    sarifMessage          `json:"message"`
	Locations  []sarifLocation       `json:"locations"`
	Properties sarifResultProperties `json:"properties"`
}

// sarifResultProperties carries the rule category; SARIF has no native
// category field on results.
type sarifResultProperties struct {
	Category string `json:"category"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

type sarifArtifact struct {
	Location sarifArtifactLocation `json:"location"`
}

// sarifLevel maps diagnostic severities to SARIF result levels.
func sarifLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "error"
	case rules.SeverityWarning:
		return "warning"
	case rules.SeverityInformation:
		return "note"
	}
	return "warning"
}

// Sarif renders the report as a SARIF 2.1.0 log with a single run. A report
// with zero diagnostics still produces a structurally valid log with an empty
// results array.
func Sarif(w io.Writer, rep Report) error {
	results := make([]sarifResult, 0, len(rep.Diagnostics))
	sarifRules := make([]sarifRule, 0)
	seenRules := make(map[string]bool)

	for _, d := range rep.Diagnostics {
		if d.Rule != "" && !seenRules[d.Rule] {
			seenRules[d.Rule] = true
			sarifRules = append(sarifRules, sarifRule{
				ID:               d.Rule,
				ShortDescription: sarifMessage{Text: d.Rule},
				Properties: sarifRuleProperties{
					Tags:     []string{strings.ToLower(string(d.Category))},
					Category: string(d.Category),
				},
			})
		}

		results = append(results, sarifResult{
			RuleID:  d.Rule,
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: fileURI(d.File)},
					Region:           sarifRegion{StartLine: d.Line, StartColumn: d.Column},
				},
			}},
			Properties: sarifResultProperties{Category: string(d.Category)},
		})
	}

	artifacts := make([]sarifArtifact, 0, len(rep.TargetFiles))
	for _, f := range rep.TargetFiles {
		artifacts = append(artifacts, sarifArtifact{
			Location: sarifArtifactLocation{URI: fileURI(f)},
		})
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:            toolName,
				SemanticVersion: toolSemanticVer,
				InformationURI:  toolInformationURI,
				Rules:           sarifRules,
			}},
			AutomationDetails: &sarifAutomation{GUID: uuid.NewString()},
			Results:           results,
			Artifacts:         artifacts,
		}},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}

func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}
