package baseline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/baseguard/internal/counter"
	"github.com/redactyl/baseguard/internal/store"
	"github.com/redactyl/baseguard/internal/types"
)

func sampleStore() *store.Store {
	s := store.New()
	s.AddIssue("npm", types.Issue{Severity: types.High, File: "async"})
	s.AddIssue("npm", types.Issue{Severity: types.Medium, File: "jake"})
	s.AddIssue("npm", types.Issue{Severity: types.High, File: "async"})
	s.AddIssue("golangci", types.Issue{Severity: types.Warning, File: "<a&b>.go"})
	return s
}

const wantJSON = `{
  "golangci": {
    "files": {
      "<a&b>.go": {
        "high": 0,
        "low": 0,
        "medium": 0,
        "note": 0,
        "undefined": 0,
        "warning": 1
      }
    },
    "total": {
      "high": 0,
      "low": 0,
      "medium": 0,
      "note": 0,
      "undefined": 0,
      "warning": 1
    }
  },
  "npm": {
    "files": {
      "async": {
        "high": 2,
        "low": 0,
        "medium": 0,
        "note": 0,
        "undefined": 0,
        "warning": 0
      },
      "jake": {
        "high": 0,
        "low": 0,
        "medium": 1,
        "note": 0,
        "undefined": 0,
        "warning": 0
      }
    },
    "total": {
      "high": 2,
      "low": 0,
      "medium": 1,
      "note": 0,
      "undefined": 0,
      "warning": 0
    }
  }
}
`

func TestEncode_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Encode(&a, Generate(sampleStore())))
	require.NoError(t, Encode(&b, Generate(sampleStore())))
	assert.Equal(t, wantJSON, a.String())
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, "{}\n", buf.String())
}

func TestGenerate_TotalIsSumOfFiles(t *testing.T) {
	snap := Generate(sampleStore())
	assert.Equal(t, counter.Counter{0, 0, 0, 1, 2, 0}, snap["npm"].Total)
	assert.Empty(t, snap.Validate())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	snap := Generate(sampleStore())
	require.NoError(t, Save(path, snap))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, wantJSON, string(raw))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, ErrNotFound))

	tests := map[string]string{
		"not json":      "{",
		"null":          "null",
		"missing key":   `{"npm": {"total": {"high": 1}, "files": {}}}`,
		"missing total": `{"npm": {"files": {}}}`,
		"wrong shape":   `{"npm": []}`,
	}
	for name, body := range tests {
		p := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".json")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		_, err := Load(p)
		assert.True(t, errors.Is(err, ErrInvalid), "%s: %v", name, err)
	}
}

func TestLoad_EmptyBaseline(t *testing.T) {
	p := filepath.Join(t.TempDir(), "b.json")
	require.NoError(t, os.WriteFile(p, []byte("{}\n"), 0o644))
	snap, err := Load(p)
	require.NoError(t, err)
	assert.Empty(t, snap)
	assert.Empty(t, snap.Linters())
}

func TestValidate_ReportsDrift(t *testing.T) {
	snap, err := Decode(strings.NewReader(`{
  "npm": {
    "total": {"note": 0, "warning": 0, "low": 0, "medium": 0, "high": 5, "undefined": 0},
    "files": {"async": {"note": 0, "warning": 0, "low": 0, "medium": 0, "high": 1, "undefined": 0}}
  }
}`))
	require.NoError(t, err)
	drift := snap.Validate()
	require.Len(t, drift, 1)
	assert.Equal(t, "npm", drift[0].Linter)
	assert.Equal(t, 5, drift[0].Recorded.Total())
	assert.Equal(t, 1, drift[0].Summed.Total())
}
