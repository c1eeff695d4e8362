// Package sarif holds the subset of the SARIF 2.1.0 object model that
// baseguard reads from tool output and writes back out.
package sarif

import "github.com/redactyl/baseguard/internal/types"

const (
	Version = "2.1.0"
	Schema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type Log struct {
	Schema  string `json:"$schema,omitempty"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Rules   []Rule `json:"rules,omitempty"`
}

type Rule struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name,omitempty"`
	ShortDescription     *Message       `json:"shortDescription,omitempty"`
	FullDescription      *Message       `json:"fullDescription,omitempty"`
	DefaultConfiguration *Configuration `json:"defaultConfiguration,omitempty"`
}

type Configuration struct {
	Level string `json:"level,omitempty"`
}

type Result struct {
	RuleID     string            `json:"ruleId,omitempty"`
	Level      string            `json:"level,omitempty"`
	Message    Message           `json:"message"`
	Locations  []Location        `json:"locations,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           *Region          `json:"region,omitempty"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	StartLine int `json:"startLine,omitempty"`
}

// SeverityFromLevel maps a SARIF result level to a severity. Absent or
// unknown levels map to Undefined.
func SeverityFromLevel(level string) types.Severity {
	switch level {
	case "note":
		return types.Note
	case "warning":
		return types.Warning
	case "error":
		return types.High
	default:
		return types.Undefined
	}
}

// LevelFromSeverity is the inverse used when exporting.
func LevelFromSeverity(s types.Severity) string {
	switch s {
	case types.High:
		return "error"
	case types.Medium, types.Warning:
		return "warning"
	case types.Low, types.Note:
		return "note"
	default:
		return "none"
	}
}
