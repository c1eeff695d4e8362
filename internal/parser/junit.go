package parser

import (
	"encoding/xml"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/types"
)

var mypyLine = regexp.MustCompile(`^(.*):(\d+): (error|note): (.*)$`)

// junitFormat reads mypy's --junit-xml output: one testcase per run with the
// diagnostics in the failure body.
type junitFormat struct {
	linter string
	log    *zap.SugaredLogger
}

type junitSuites struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	XMLName  xml.Name     `xml:"testsuite"`
	Name     *string      `xml:"name,attr"`
	Tests    *string      `xml:"tests,attr"`
	Cases    []junitCase  `xml:"testcase"`
	Children []junitSuite `xml:"testsuite"`
}

type junitCase struct {
	Name     *string        `xml:"name,attr"`
	Failures []junitFailure `xml:"failure"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

func (junitFormat) Name() string { return "mypy" }

func (f junitFormat) Claims(text string) bool {
	_, ok := decodeJUnit(text)
	return ok
}

func (f junitFormat) Extract(text string, sink types.Observer) error {
	suites, _ := decodeJUnit(text)
	for _, s := range suites {
		f.walk(s, sink)
	}
	return nil
}

func (f junitFormat) walk(s junitSuite, sink types.Observer) {
	for _, c := range s.Cases {
		for _, fail := range c.Failures {
			for _, line := range strings.Split(fail.Body, "\n") {
				line = strings.TrimRight(line, "\r")
				m := mypyLine.FindStringSubmatch(line)
				if m == nil {
					if strings.TrimSpace(line) != "" {
						debugLog(f.log).Debugw("skipping mypy line", "line", line)
					}
					continue
				}
				sev := types.Note
				if m[3] == "error" {
					sev = types.High
				}
				sink.AddIssue(f.linter, types.Issue{
					Severity: sev,
					File:     m[1],
					RuleID:   m[3],
					Message:  m[4],
					Location: m[2],
				})
			}
		}
	}
	for _, child := range s.Children {
		f.walk(child, sink)
	}
}

// decodeJUnit accepts a <testsuites> or <testsuite> root and checks the
// attributes the JUnit schema makes mandatory.
func decodeJUnit(text string) ([]junitSuite, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "<") {
		return nil, false
	}
	var suites []junitSuite
	var multi junitSuites
	if err := xml.Unmarshal([]byte(trimmed), &multi); err == nil {
		suites = multi.Suites
	} else {
		var single junitSuite
		if err := xml.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, false
		}
		suites = []junitSuite{single}
	}
	for _, s := range suites {
		if !validSuite(s) {
			return nil, false
		}
	}
	return suites, true
}

func validSuite(s junitSuite) bool {
	if s.Name == nil || s.Tests == nil {
		return false
	}
	for _, c := range s.Cases {
		if c.Name == nil {
			return false
		}
	}
	for _, child := range s.Children {
		if !validSuite(child) {
			return false
		}
	}
	return true
}
