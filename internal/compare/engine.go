// Package compare diffs a fresh issue store against a baseline snapshot and
// decides whether the code got worse, improved or stayed the same.
package compare

import (
	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/baseline"
	"github.com/redactyl/baseguard/internal/counter"
	"github.com/redactyl/baseguard/internal/types"
)

// Store is the read side of an issue store.
type Store interface {
	Linters() []string
	Files(linter string) []string
	CounterForFile(linter, file string) counter.Counter
	CounterForLinter(linter string) counter.Counter
	Details(linter string) []types.Detail
}

type Option func(*engine)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *engine) {
		if l != nil {
			e.log = l
		}
	}
}

type engine struct {
	log *zap.SugaredLogger
}

// Compare runs the diff of cur against snap.
//
// For every linter in cur, a file the baseline tracks is a regression when
// any severity grew and an improvement when counts only shrank; a file the
// baseline never saw is always a regression. Linters with regressions get a
// Total row carrying every issue detail. Baseline files or linters that no
// longer report anything count as improvements.
func Compare(snap baseline.Snapshot, cur Store, opts ...Option) *Result {
	e := &engine{log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(e)
	}
	res := NewResult()
	seen := map[string]bool{}
	for _, linter := range cur.Linters() {
		seen[linter] = true
		e.compareLinter(res, snap, cur, linter)
	}
	for _, linter := range snap.Linters() {
		if !seen[linter] {
			e.log.Debugw("linter vanished from reports", "linter", linter)
			res.MarkImproved()
		}
	}
	return res
}

func (e *engine) compareLinter(res *Result, snap baseline.Snapshot, cur Store, linter string) {
	entry, known := snap[linter]
	oldFiles := map[string]counter.Counter{}
	if known {
		for f, c := range entry.Files {
			oldFiles[f] = c
		}
	}

	for _, file := range cur.Files(linter) {
		now := cur.CounterForFile(linter, file)
		before, tracked := oldFiles[file]
		if !tracked {
			e.log.Debugw("untracked file", "linter", linter, "file", file)
			res.AddRow(linter, Row{Entity: file, New: now})
			continue
		}
		delete(oldFiles, file)
		switch {
		case before.StrictWorse(now):
			e.log.Debugw("tracked file regressed", "linter", linter, "file", file)
			res.AddRow(linter, Row{Entity: file, Old: before, New: now})
		case before.LooseDiff(now):
			res.MarkImproved()
		}
	}

	if res.IsWorse(linter) {
		var oldTotal counter.Counter
		if known {
			oldTotal = entry.Total
		}
		res.AddRow(linter, Row{
			Entity:  TotalEntity,
			Old:     oldTotal,
			New:     cur.CounterForLinter(linter),
			Details: cur.Details(linter),
		})
		return
	}
	if len(oldFiles) > 0 {
		e.log.Debugw("baseline files without issues", "linter", linter, "files", len(oldFiles))
		res.MarkImproved()
	}
}
