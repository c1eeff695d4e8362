package parser

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/types"
)

// ErrUnrecognized is returned in strict mode when no recognizer claims a report.
var ErrUnrecognized = errors.New("unrecognized report format")

// Recognizer claims and extracts one report grammar. Extract is only called
// on text for which Claims returned true.
type Recognizer interface {
	Name() string
	Claims(text string) bool
	Extract(text string, sink types.Observer) error
}

// Outcome records which recognizer consumed a report file.
type Outcome struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Issues int    `json:"issues"`
}

type Option func(*Chain)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStrict makes unclaimed reports an error instead of a warning.
func WithStrict(strict bool) Option { return func(c *Chain) { c.strict = strict } }

// WithSchemaDir overrides embedded schema documents with same-named files
// found in dir.
func WithSchemaDir(dir string) Option { return func(c *Chain) { c.schemaDir = dir } }

// WithRecognizers replaces the built-in recognizer list.
func WithRecognizers(rs ...Recognizer) Option {
	return func(c *Chain) { c.recognizers = rs }
}

// Chain tries its recognizers in declared order; the first claim wins.
type Chain struct {
	recognizers []Recognizer
	log         *zap.SugaredLogger
	strict      bool
	schemaDir   string
}

// NewChain builds the chain with the built-in recognizers unless
// WithRecognizers is given. Schema documents are compiled up front.
func NewChain(opts ...Option) (*Chain, error) {
	c := &Chain{log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(c)
	}
	if c.recognizers == nil {
		rs, err := builtin(newSchemaSet(c.schemaDir), c.log)
		if err != nil {
			return nil, err
		}
		c.recognizers = rs
	}
	return c, nil
}

// Formats lists recognizer names in chain order.
func (c *Chain) Formats() []string {
	out := make([]string, 0, len(c.recognizers))
	for _, r := range c.recognizers {
		out = append(out, r.Name())
	}
	return out
}

// Ingest hands text to the first recognizer that claims it and returns that
// recognizer's name. Issues reach sink only if extraction succeeds as a whole.
// Unclaimed text yields "" and, unless strict, no error.
func (c *Chain) Ingest(text string, sink types.Observer) (string, error) {
	_, name, err := c.ingest(text, sink)
	return name, err
}

func (c *Chain) ingest(text string, sink types.Observer) (int, string, error) {
	for _, r := range c.recognizers {
		if !r.Claims(text) {
			continue
		}
		var buf buffer
		if err := r.Extract(text, &buf); err != nil {
			return 0, r.Name(), fmt.Errorf("%s: %w", r.Name(), err)
		}
		buf.flush(sink)
		c.log.Debugw("report claimed", "format", r.Name(), "issues", len(buf))
		return len(buf), r.Name(), nil
	}
	if c.strict {
		return 0, "", ErrUnrecognized
	}
	c.log.Warnw("no parser recognized report; ignoring it", "bytes", len(text))
	return 0, "", nil
}

// ParseString ingests a single in-memory report.
func (c *Chain) ParseString(text string, sink types.Observer) (string, error) {
	return c.Ingest(text, sink)
}

// ParseFiles reads and ingests each path in order.
func (c *Chain) ParseFiles(paths []string, sink types.Observer) ([]Outcome, error) {
	out := make([]Outcome, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return out, fmt.Errorf("read report %s: %w", p, err)
		}
		n, name, err := c.ingest(string(b), sink)
		if err != nil {
			return out, fmt.Errorf("report %s: %w", p, err)
		}
		if name == "" {
			c.log.Warnw("report skipped", "path", p)
		}
		out = append(out, Outcome{Path: p, Format: name, Issues: n})
	}
	return out, nil
}

// ExpandPaths resolves doublestar patterns such as reports/**/*.sarif.
// Plain paths, and existing files whose names merely contain pattern
// characters, are kept as given; a pattern without matches is an error.
func ExpandPaths(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range patterns {
		if !hasMeta(p) || exists(p) {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
			continue
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad report pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no reports match %q", p)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func hasMeta(p string) bool {
	for _, r := range p {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// debugLog returns l, or a no-op logger for recognizers built without one.
func debugLog(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}

// buffer holds extracted issues until the recognizer finishes.
type buffer []entry

type entry struct {
	linter string
	issue  types.Issue
}

func (b *buffer) AddIssue(linter string, issue types.Issue) {
	*b = append(*b, entry{linter, issue})
}

func (b buffer) flush(sink types.Observer) {
	for _, e := range b {
		sink.AddIssue(e.linter, e.issue)
	}
}
