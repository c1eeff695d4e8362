// Package store keeps the normalized issues of one run and answers the
// aggregate queries used to build and compare baselines.
package store

import (
	"sort"

	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/counter"
	"github.com/redactyl/baseguard/internal/types"
)

type Option func(*Store)

// WithLogger sets the logger used for data-quality warnings.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is an in-memory issue store. It is not safe for concurrent use.
type Store struct {
	byLinter map[string][]types.Issue
	log      *zap.SugaredLogger
}

func New(opts ...Option) *Store {
	s := &Store{byLinter: map[string][]types.Issue{}, log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AddIssue implements types.Observer.
func (s *Store) AddIssue(linter string, issue types.Issue) {
	s.byLinter[linter] = append(s.byLinter[linter], issue)
}

// Len returns the number of stored issues.
func (s *Store) Len() int {
	n := 0
	for _, is := range s.byLinter {
		n += len(is)
	}
	return n
}

// Linters returns the distinct linter names, sorted.
func (s *Store) Linters() []string {
	out := make([]string, 0, len(s.byLinter))
	for l := range s.byLinter {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Files returns the distinct files recorded for linter, sorted.
func (s *Store) Files(linter string) []string {
	seen := map[string]struct{}{}
	for _, is := range s.byLinter[linter] {
		seen[is.File] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// CounterForFile counts the issues of linter in file by severity.
func (s *Store) CounterForFile(linter, file string) counter.Counter {
	var c counter.Counter
	for _, is := range s.byLinter[linter] {
		if is.File == file {
			s.count(&c, linter, is)
		}
	}
	return c
}

// CounterForLinter counts every issue of linter by severity.
func (s *Store) CounterForLinter(linter string) counter.Counter {
	var c counter.Counter
	for _, is := range s.byLinter[linter] {
		s.count(&c, linter, is)
	}
	return c
}

func (s *Store) count(c *counter.Counter, linter string, is types.Issue) {
	if !is.Severity.Valid() {
		s.log.Warnw("skipping issue with unknown severity",
			"linter", linter, "file", is.File, "rule", is.RuleID, "severity", int(is.Severity))
		return
	}
	c.Add(is.Severity, 1)
}

// Details returns one record per issue of linter, ordered by file and then
// insertion order.
func (s *Store) Details(linter string) []types.Detail {
	issues := s.byLinter[linter]
	out := make([]types.Detail, 0, len(issues))
	for _, is := range issues {
		out = append(out, types.Detail{
			Linter:   linter,
			File:     is.File,
			Severity: is.Severity.String(),
			Message:  is.Message,
			Location: is.Location,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}
