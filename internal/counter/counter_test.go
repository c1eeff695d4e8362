package counter

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/baseguard/internal/types"
)

func TestStrictWorse(t *testing.T) {
	tests := []struct {
		name string
		old  Counter
		new  Counter
		want bool
	}{
		{"equal", Counter{0, 0, 0, 0, 1, 0}, Counter{0, 0, 0, 0, 1, 0}, false},
		{"high grows", Counter{0, 0, 0, 0, 1, 0}, Counter{0, 0, 0, 0, 2, 0}, true},
		{"pure decrease", Counter{1, 1, 0, 0, 2, 0}, Counter{0, 1, 0, 0, 1, 0}, false},
		{"shift between severities", Counter{0, 0, 0, 2, 0, 0}, Counter{0, 0, 0, 1, 1, 0}, true},
		{"from zero", Counter{}, Counter{0, 0, 0, 0, 0, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.old.StrictWorse(tt.new))
		})
	}
}

func TestLooseDiff(t *testing.T) {
	a := Counter{1, 0, 0, 0, 0, 0}
	assert.False(t, a.LooseDiff(a))
	assert.True(t, a.LooseDiff(Counter{}))
	assert.False(t, a.StrictWorse(Counter{}))
}

func TestMerge(t *testing.T) {
	got := Merge(Counter{1, 0, 2, 0, 0, 0}, Counter{0, 3, 1, 0, 0, 1}, Counter{})
	assert.Equal(t, Counter{1, 3, 3, 0, 0, 1}, got)
	assert.Equal(t, 8, got.Total())
	assert.Equal(t, Counter{}, Merge())
}

func TestAddUsesIndexTable(t *testing.T) {
	var c Counter
	c.Add(types.High, 2)
	c.Add(types.Note, 1)
	c.Add(types.Severity(42), 5)
	assert.Equal(t, Counter{1, 0, 0, 0, 2, 0}, c)
	assert.Equal(t, 2, c.Get(types.High))
}

func TestFromMap_RequiresAllKeys(t *testing.T) {
	full := map[string]int{"note": 1, "warning": 2, "low": 3, "medium": 4, "high": 5, "undefined": 6}
	c, err := FromMap(full)
	require.NoError(t, err)
	assert.Equal(t, Counter{1, 2, 3, 4, 5, 6}, c)
	assert.Equal(t, full, c.ToMap())

	delete(full, "medium")
	_, err = FromMap(full)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSeverity))
	assert.Contains(t, err.Error(), "medium")
}

func TestJSON_SortedKeys(t *testing.T) {
	b, err := json.Marshal(Counter{0, 0, 0, 0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, `{"high":1,"low":0,"medium":0,"note":0,"undefined":0,"warning":0}`, string(b))

	var c Counter
	require.NoError(t, json.Unmarshal(b, &c))
	assert.Equal(t, Counter{0, 0, 0, 0, 1, 0}, c)

	err = json.Unmarshal([]byte(`{"high":1}`), &c)
	assert.True(t, errors.Is(err, ErrMissingSeverity))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"0"}, Counter{}.Lines())
	assert.Equal(t, []string{"WARNING: 2", "HIGH: 1"}, Counter{0, 2, 0, 0, 1, 0}.Lines())
}
