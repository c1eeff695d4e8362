package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/redactyl/baseguard/internal/types"
)

// Console prints each issue on one line as it arrives.
type Console struct {
	w     io.Writer
	color bool
}

func NewConsole(w io.Writer, color bool) *Console {
	return &Console{w: w, color: color}
}

// AddIssue implements types.Observer.
func (c *Console) AddIssue(linter string, is types.Issue) {
	sev := is.Severity.String()
	if c.color {
		sev = severityStyles[is.Severity].Render(sev)
	}
	fmt.Fprintf(c.w, "%s\t%s\t%s:%s\t%s\t%s\n", linter, sev, is.File, is.Location, is.RuleID, is.Message)
}

// JSONCollector gathers issues as details for WriteJSON.
type JSONCollector struct {
	Details []types.Detail
}

// AddIssue implements types.Observer.
func (j *JSONCollector) AddIssue(linter string, is types.Issue) {
	j.Details = append(j.Details, types.Detail{
		Linter:   linter,
		File:     is.File,
		Severity: is.Severity.String(),
		Message:  is.Message,
		Location: is.Location,
	})
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
