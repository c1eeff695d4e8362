// internal/report/sarif.go
package report

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/redactyl/baseguard/internal/sarif"
	"github.com/redactyl/baseguard/internal/types"
)

// SARIFExporter collects issues into one SARIF run per linter, in the order
// linters are first seen.
type SARIFExporter struct {
	runs  []sarif.Run
	index map[string]int
	rules []map[string]bool
}

func NewSARIFExporter() *SARIFExporter {
	return &SARIFExporter{index: map[string]int{}}
}

// AddIssue implements types.Observer.
func (e *SARIFExporter) AddIssue(linter string, is types.Issue) {
	i, ok := e.index[linter]
	if !ok {
		i = len(e.runs)
		e.index[linter] = i
		e.runs = append(e.runs, sarif.Run{
			Tool:    sarif.Tool{Driver: sarif.Driver{Name: linter}},
			Results: []sarif.Result{},
		})
		e.rules = append(e.rules, map[string]bool{})
	}
	run := &e.runs[i]
	if is.RuleID != "" && !e.rules[i][is.RuleID] {
		e.rules[i][is.RuleID] = true
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarif.Rule{ID: is.RuleID})
	}

	props := map[string]string{"severity": is.Severity.String()}
	loc := sarif.PhysicalLocation{ArtifactLocation: sarif.ArtifactLocation{URI: is.File}}
	if n, err := strconv.Atoi(is.Location); err == nil && n > 0 {
		loc.Region = &sarif.Region{StartLine: n}
	} else if is.Location != "" {
		props["location"] = is.Location
	}
	run.Results = append(run.Results, sarif.Result{
		RuleID:     is.RuleID,
		Level:      sarif.LevelFromSeverity(is.Severity),
		Message:    sarif.Message{Text: is.Message},
		Locations:  []sarif.Location{{PhysicalLocation: loc}},
		Properties: props,
	})
}

// Log returns the collected document.
func (e *SARIFExporter) Log() sarif.Log {
	runs := e.runs
	if runs == nil {
		runs = []sarif.Run{}
	}
	return sarif.Log{Schema: sarif.Schema, Version: sarif.Version, Runs: runs}
}

// Write encodes the document as indented JSON.
func (e *SARIFExporter) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e.Log())
}
