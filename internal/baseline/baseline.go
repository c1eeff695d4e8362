// Package baseline reads and writes the committed snapshot of per-linter,
// per-file severity counts that later runs are compared against.
package baseline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/redactyl/baseguard/internal/counter"
)

var (
	// ErrNotFound means the baseline file could not be read.
	ErrNotFound = errors.New("baseline not found")
	// ErrInvalid means the baseline file could not be decoded into a snapshot.
	ErrInvalid = errors.New("invalid baseline")
)

// Snapshot maps linter name to its recorded counts.
type Snapshot map[string]LinterEntry

// LinterEntry holds the total and per-file counts of one linter. Field order
// matches the sorted key order of the file.
type LinterEntry struct {
	Files map[string]counter.Counter `json:"files"`
	Total counter.Counter            `json:"total"`
}

// Source is what a snapshot is generated from.
type Source interface {
	Linters() []string
	Files(linter string) []string
	CounterForFile(linter, file string) counter.Counter
}

// Generate rebuilds a snapshot from scratch. Totals are the sum of the
// per-file counters.
func Generate(src Source) Snapshot {
	snap := Snapshot{}
	for _, linter := range src.Linters() {
		entry := LinterEntry{Files: map[string]counter.Counter{}}
		for _, f := range src.Files(linter) {
			c := src.CounterForFile(linter, f)
			entry.Files[f] = c
			entry.Total = counter.Merge(entry.Total, c)
		}
		snap[linter] = entry
	}
	return snap
}

// Load reads the baseline at path. An empty object is a valid zero-issue
// baseline.
func Load(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	snap, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Decode parses a baseline document.
func Decode(r io.Reader) (Snapshot, error) {
	var raw map[string]struct {
		Files map[string]counter.Counter `json:"files"`
		Total *counter.Counter           `json:"total"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is null", ErrInvalid)
	}
	snap := make(Snapshot, len(raw))
	for linter, e := range raw {
		if e.Total == nil {
			return nil, fmt.Errorf("%w: linter %q has no total", ErrInvalid, linter)
		}
		if e.Files == nil {
			e.Files = map[string]counter.Counter{}
		}
		snap[linter] = LinterEntry{Total: *e.Total, Files: e.Files}
	}
	return snap, nil
}

// Encode writes snap with sorted keys, two-space indent and a trailing
// newline. Output is byte-identical for equal snapshots.
func Encode(w io.Writer, snap Snapshot) error {
	if snap == nil {
		snap = Snapshot{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(snap)
}

// Save writes snap to path, replacing any previous content.
func Save(path string, snap Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write baseline %s: %w", path, err)
	}
	return nil
}

// Linters returns the linter names of snap, sorted.
func (s Snapshot) Linters() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Inconsistency is a linter whose recorded total differs from the sum of
// its file counters.
type Inconsistency struct {
	Linter   string
	Recorded counter.Counter
	Summed   counter.Counter
}

// Validate reports every linter whose total disagrees with its files.
// Hand-edited baselines are still accepted; callers decide what to do.
func (s Snapshot) Validate() []Inconsistency {
	var out []Inconsistency
	for _, linter := range s.Linters() {
		entry := s[linter]
		var sum counter.Counter
		for _, c := range entry.Files {
			sum = counter.Merge(sum, c)
		}
		if sum != entry.Total {
			out = append(out, Inconsistency{Linter: linter, Recorded: entry.Total, Summed: sum})
		}
	}
	return out
}
