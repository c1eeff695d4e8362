package compare

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/redactyl/baseguard/internal/types"
)

// Buckets groups details by file name, then linter. The TotalEntity bucket
// holds every detail of a linter.
type Buckets map[string]map[string][]types.Detail

// WorsenedIssues collects the details attached to Total rows. Identical
// details are kept once per bucket.
func (r *Result) WorsenedIssues() Buckets {
	out := Buckets{TotalEntity: {}}
	for linter := range r.Linters {
		out[TotalEntity][linter] = []types.Detail{}
	}
	seen := map[string]map[uint64]bool{}
	add := func(bucket, linter string, d types.Detail) {
		key := bucket + "\x00" + linter
		if seen[key] == nil {
			seen[key] = map[uint64]bool{}
		}
		fp := fingerprint(d)
		if seen[key][fp] {
			return
		}
		seen[key][fp] = true
		if out[bucket] == nil {
			out[bucket] = map[string][]types.Detail{}
		}
		out[bucket][linter] = append(out[bucket][linter], d)
	}
	for _, linter := range r.sortedLinters() {
		for _, row := range r.Linters[linter] {
			if row.Entity != TotalEntity {
				continue
			}
			for _, d := range row.Details {
				add(d.File, linter, d)
				add(TotalEntity, linter, d)
			}
		}
	}
	return out
}

// WorsenedSeverities maps lower-case severity name to file to the linters
// whose count for that severity changed on a file row.
func (r *Result) WorsenedSeverities() map[string]map[string][]string {
	sets := map[string]map[string]map[string]bool{}
	for linter, rows := range r.Linters {
		for _, row := range rows {
			if row.Entity == TotalEntity {
				continue
			}
			for _, s := range types.Severities {
				if row.Old.Get(s) == row.New.Get(s) {
					continue
				}
				if sets[s.Key()] == nil {
					sets[s.Key()] = map[string]map[string]bool{}
				}
				if sets[s.Key()][row.Entity] == nil {
					sets[s.Key()][row.Entity] = map[string]bool{}
				}
				sets[s.Key()][row.Entity][linter] = true
			}
		}
	}
	out := make(map[string]map[string][]string, len(sets))
	for sev, files := range sets {
		out[sev] = make(map[string][]string, len(files))
		for f, linters := range files {
			list := make([]string, 0, len(linters))
			for l := range linters {
				list = append(list, l)
			}
			sort.Strings(list)
			out[sev][f] = list
		}
	}
	return out
}

// RegressionDetails returns the worsened details whose file changed at the
// detail's own severity, ordered by linter then file.
func (r *Result) RegressionDetails() []types.Detail {
	changed := r.WorsenedSeverities()
	buckets := r.WorsenedIssues()
	var out []types.Detail
	for _, linter := range r.sortedLinters() {
		for _, d := range buckets[TotalEntity][linter] {
			files := changed[strings.ToLower(d.Severity)]
			if _, ok := files[d.File]; ok {
				out = append(out, d)
			}
		}
	}
	return out
}

func (r *Result) sortedLinters() []string {
	out := make([]string, 0, len(r.Linters))
	for l := range r.Linters {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func fingerprint(d types.Detail) uint64 {
	h := xxhash.New()
	for _, part := range []string{d.Linter, d.File, d.Severity, d.Message, d.Location} {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
