package core

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/baseline"
	"github.com/redactyl/baseguard/internal/compare"
	"github.com/redactyl/baseguard/internal/parser"
	"github.com/redactyl/baseguard/internal/store"
	"github.com/redactyl/baseguard/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Issue    = types.Issue
	Detail   = types.Detail
	Severity = types.Severity
	Observer = types.Observer
	Store    = store.Store
	Snapshot = baseline.Snapshot
	Result   = compare.Result
	Verdict  = compare.Verdict
	Outcome  = parser.Outcome
)

const (
	Same     = compare.Same
	Worse    = compare.Worse
	Improved = compare.Improved
)

var (
	ErrUnrecognized     = parser.ErrUnrecognized
	ErrBaselineNotFound = baseline.ErrNotFound
	ErrBaselineInvalid  = baseline.ErrInvalid
)

// Options tune report ingestion. The zero value uses the built-in schemas,
// tolerates unrecognized reports and logs nothing.
type Options struct {
	Strict     bool
	SchemasDir string
	Logger     *zap.SugaredLogger
}

// Parse expands report patterns and ingests every report into a new store.
// Extra observers see each issue too.
func Parse(reports []string, opts Options, extra ...Observer) (*Store, []Outcome, error) {
	paths, err := parser.ExpandPaths(reports)
	if err != nil {
		return nil, nil, err
	}
	chain, err := parser.NewChain(
		parser.WithLogger(opts.Logger),
		parser.WithStrict(opts.Strict),
		parser.WithSchemaDir(opts.SchemasDir),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build parser chain: %w", err)
	}
	st := store.New(store.WithLogger(opts.Logger))
	sink := types.Fanout(append([]Observer{st}, extra...))
	outcomes, err := chain.ParseFiles(paths, sink)
	if err != nil {
		return nil, outcomes, err
	}
	return st, outcomes, nil
}

// Generate parses reports and returns the snapshot they describe.
func Generate(reports []string, opts Options) (Snapshot, error) {
	st, _, err := Parse(reports, opts)
	if err != nil {
		return nil, err
	}
	return baseline.Generate(st), nil
}

// Compare loads the baseline at basefile and diffs the reports against it.
// Baseline errors wrap ErrBaselineNotFound or ErrBaselineInvalid.
func Compare(basefile string, reports []string, opts Options) (*Result, *Store, error) {
	snap, err := baseline.Load(basefile)
	if err != nil {
		return nil, nil, err
	}
	st, _, err := Parse(reports, opts)
	if err != nil {
		return nil, nil, err
	}
	return compare.Compare(snap, st, compare.WithLogger(opts.Logger)), st, nil
}

// IsBaselineError reports whether err came from loading the baseline.
func IsBaselineError(err error) bool {
	return errors.Is(err, baseline.ErrNotFound) || errors.Is(err, baseline.ErrInvalid)
}
