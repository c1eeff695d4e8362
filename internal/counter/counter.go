// Package counter implements the per-severity issue count vector shared by
// the issue store, the baseline file and the comparison engine.
package counter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redactyl/baseguard/internal/types"
)

// ErrMissingSeverity is returned when a serialized counter lacks one of the
// six severity keys.
var ErrMissingSeverity = errors.New("missing severity key")

// Counter holds one count per severity, indexed by Severity.Index.
type Counter [types.NumSeverities]int

// Add increments the slot of sev by n. Undeclared severities are ignored.
func (c *Counter) Add(sev types.Severity, n int) {
	if i := sev.Index(); i >= 0 {
		c[i] += n
	}
}

// Get returns the count for sev.
func (c Counter) Get(sev types.Severity) int {
	if i := sev.Index(); i >= 0 {
		return c[i]
	}
	return 0
}

// Total is the sum of all slots.
func (c Counter) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// IsZero reports whether every slot is zero.
func (c Counter) IsZero() bool { return c == Counter{} }

// Merge returns the element-wise sum of counters.
func Merge(counters ...Counter) Counter {
	var out Counter
	for _, c := range counters {
		for i := range c {
			out[i] += c[i]
		}
	}
	return out
}

// StrictWorse reports whether next exceeds c at any severity.
func (c Counter) StrictWorse(next Counter) bool {
	for i := range c {
		if next[i] > c[i] {
			return true
		}
	}
	return false
}

// LooseDiff reports whether next differs from c at any severity.
func (c Counter) LooseDiff(next Counter) bool { return c != next }

// ToMap returns the baseline representation keyed by lower-case severity name.
func (c Counter) ToMap() map[string]int {
	m := make(map[string]int, types.NumSeverities)
	for _, s := range types.Severities {
		m[s.Key()] = c[s.Index()]
	}
	return m
}

// FromMap parses the baseline representation. All six keys are required;
// unknown keys are ignored.
func FromMap(m map[string]int) (Counter, error) {
	var c Counter
	for _, s := range types.Severities {
		v, ok := m[s.Key()]
		if !ok {
			return Counter{}, fmt.Errorf("%w: %s", ErrMissingSeverity, s.Key())
		}
		if v < 0 {
			return Counter{}, fmt.Errorf("negative count %d for %s", v, s.Key())
		}
		c[s.Index()] = v
	}
	return c, nil
}

// MarshalJSON encodes the counter as its six-key map. encoding/json sorts map
// keys, which keeps baseline output stable.
func (c Counter) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

func (c *Counter) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Lines renders one "name: count" line per non-zero severity, in display
// order. A zero counter renders as "0".
func (c Counter) Lines() []string {
	var out []string
	for _, s := range types.Severities {
		if v := c[s.Index()]; v != 0 {
			out = append(out, fmt.Sprintf("%s: %d", s, v))
		}
	}
	if len(out) == 0 {
		return []string{"0"}
	}
	return out
}

// Delta returns c minus next, slot by slot.
func (c Counter) Delta(next Counter) Counter {
	var out Counter
	for i := range c {
		out[i] = c[i] - next[i]
	}
	return out
}
