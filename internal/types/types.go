package types

import (
	"fmt"
	"strings"
)

// Severity is the normalized level of an issue. The zero value is Note.
type Severity int

const (
	Note Severity = iota
	Warning
	Low
	Medium
	High
	Undefined
)

// NumSeverities is the number of slots in a severity counter.
const NumSeverities = 6

// Severities lists every severity in display order.
var Severities = [NumSeverities]Severity{Note, Warning, Low, Medium, High, Undefined}

// severityIndex is the counter slot of each severity. Kept separate from the
// constant values so the file layout never depends on declaration order.
var severityIndex = map[Severity]int{
	Note:      0,
	Warning:   1,
	Low:       2,
	Medium:    3,
	High:      4,
	Undefined: 5,
}

var severityNames = map[Severity]string{
	Note:      "NOTE",
	Warning:   "WARNING",
	Low:       "LOW",
	Medium:    "MEDIUM",
	High:      "HIGH",
	Undefined: "UNDEFINED",
}

// Valid reports whether s is one of the declared severities.
func (s Severity) Valid() bool {
	_, ok := severityIndex[s]
	return ok
}

// Index returns the counter slot for s, or -1 if s is not a declared severity.
func (s Severity) Index() int {
	if i, ok := severityIndex[s]; ok {
		return i
	}
	return -1
}

func (s Severity) String() string {
	if n, ok := severityNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Key is the lower-case name used in baseline files.
func (s Severity) Key() string { return strings.ToLower(s.String()) }

// ParseSeverity resolves a severity name in either case.
func ParseSeverity(name string) (Severity, error) {
	up := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range severityNames {
		if n == up {
			return s, nil
		}
	}
	return Undefined, fmt.Errorf("unknown severity %q", name)
}

// Issue is one normalized finding. The linter that produced it travels
// alongside, see Observer.
type Issue struct {
	Severity Severity
	File     string
	RuleID   string
	Message  string
	Location string
}

// Detail is the reporting record attached to regression rows.
type Detail struct {
	Linter   string `json:"linter"`
	File     string `json:"file"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

// Observer receives issues from report parsers.
type Observer interface {
	AddIssue(linter string, issue Issue)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(linter string, issue Issue)

func (f ObserverFunc) AddIssue(linter string, issue Issue) { f(linter, issue) }

// Fanout delivers every issue to each observer in order.
type Fanout []Observer

func (f Fanout) AddIssue(linter string, issue Issue) {
	for _, o := range f {
		o.AddIssue(linter, issue)
	}
}
