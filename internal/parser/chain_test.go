package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/redactyl/baseguard/internal/types"
)

type recorded struct {
	Linter string
	Issue  types.Issue
}

type recorder struct {
	got []recorded
}

func (r *recorder) AddIssue(linter string, is types.Issue) {
	r.got = append(r.got, recorded{linter, is})
}

func newTestChain(t *testing.T, opts ...Option) *Chain {
	t.Helper()
	c, err := NewChain(opts...)
	require.NoError(t, err)
	return c
}

func ingestFile(t *testing.T, c *Chain, name string) (string, []recorded) {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	var rec recorder
	format, err := c.Ingest(string(b), &rec)
	require.NoError(t, err)
	return format, rec.got
}

func TestChain_Order(t *testing.T) {
	c := newTestChain(t)
	assert.Equal(t, []string{
		"sarif", "golangci", "npm", "pip-audit", "poetry-audit", "pylint", "radon", "mypy", "lizard",
	}, c.Formats())
}

func TestChain_Formats(t *testing.T) {
	c := newTestChain(t)
	tests := []struct {
		file   string
		format string
		want   []recorded
	}{
		{
			file:   "trivy.sarif",
			format: "sarif",
			want: []recorded{
				{"Trivy", types.Issue{Severity: types.Warning, File: "poetry.lock", RuleID: "CVE-2022-23491",
					Message: "Package: certifi\nInstalled Version: 2022.9.24\nVulnerability CVE-2022-23491", Location: "1"}},
				{"Trivy", types.Issue{Severity: types.High, File: "poetry.lock", RuleID: "CVE-2023-37920",
					Message: "Package: certifi\nVulnerability CVE-2023-37920", Location: "14"}},
			},
		},
		{
			file:   "rules-only.sarif",
			format: "sarif",
			want: []recorded{
				{"checkov", types.Issue{Severity: types.High, File: "CKV_DOCKER_2", RuleID: "CKV_DOCKER_2",
					Message: "HEALTHCHECK missing", Location: "Ensure that HEALTHCHECK instructions have been added to container images"}},
				{"checkov", types.Issue{Severity: types.Undefined, File: "CKV_DOCKER_3", RuleID: "CKV_DOCKER_3",
					Message: "Ensure that a user for the container has been created", Location: "CKV_DOCKER_3"}},
			},
		},
		{
			// The second result has a string startLine and the second rule a
			// non-string name; both are dropped, the rest of each run is kept.
			file:   "multi-run.sarif",
			format: "sarif",
			want: []recorded{
				{"semgrep", types.Issue{Severity: types.High, File: "main.go", RuleID: "go.lang.security.audit.unsafe",
					Message: "Use of unsafe", Location: "12"}},
				{"checkov", types.Issue{Severity: types.Warning, File: "CKV_K8S_11", RuleID: "CKV_K8S_11",
					Message: "CPU limits missing", Location: "CPU limits should be set"}},
			},
		},
		{
			file:   "golangci.json",
			format: "golangci",
			want: []recorded{
				{"golangci", types.Issue{Severity: types.High, File: "internal/audit/log.go", RuleID: "errcheck",
					Message: "Error return value of `f.Close` is not checked", Location: "56"}},
				{"golangci", types.Issue{Severity: types.Medium, File: "internal/config/config.go", RuleID: "gosec",
					Message: "G304: Potential file inclusion via variable", Location: "12"}},
				{"golangci", types.Issue{Severity: types.Undefined, File: "internal/config/config.go", RuleID: "unused",
					Message: "func `helper` is unused", Location: "40"}},
			},
		},
		{
			file:   "npm.json",
			format: "npm",
			want: []recorded{
				{"npm", types.Issue{Severity: types.High, File: "async", RuleID: "1097691",
					Message: "Prototype Pollution in async", Location: ">=2.0.0 <2.6.4"}},
			},
		},
		{
			file:   "pip-audit.json",
			format: "pip-audit",
			want: []recorded{
				{"pip-audit", types.Issue{Severity: types.Undefined, File: "certifi", RuleID: "GHSA-43fp-rhv2-5gv8",
					Message: "Certifi 2022.12.07 removes root certificates from \"TrustCor\" from the root store."}},
				{"pip-audit", types.Issue{Severity: types.Undefined, File: "py", RuleID: "PYSEC-2022-42969",
					Message: "The py library through 1.11.0 for Python allows remote attackers to conduct a ReDoS attack."}},
			},
		},
		{
			file:   "poetry-audit.json",
			format: "poetry-audit",
			want: []recorded{
				{"poetry-audit", types.Issue{Severity: types.Undefined, File: "certifi", RuleID: "CVE-2022-23491",
					Message: "Certifi 2022.12.07 includes a fix for CVE-2022-23491."}},
				{"poetry-audit", types.Issue{Severity: types.Undefined, File: "py", RuleID: "CVE-2022-42969",
					Message: "Py throughout 1.11.0 allows remote attackers to conduct a ReDoS attack."}},
			},
		},
		{
			file:   "pylint.json",
			format: "pylint",
			want: []recorded{
				{"pylint", types.Issue{Severity: types.High, File: "src/abram/raw_data.py", RuleID: "import-error",
					Message: "Unable to import 'numpy'", Location: "21"}},
				{"pylint", types.Issue{Severity: types.High, File: "src/abram/raw_data.py", RuleID: "import-error",
					Message: "Unable to import 'pandas'", Location: "22"}},
				{"pylint", types.Issue{Severity: types.Low, File: "src/abram/raw_data.py", RuleID: "too-few-public-methods",
					Message: "Too few public methods (1/2)", Location: "68"}},
			},
		},
		{
			file:   "radon.json",
			format: "radon",
			want: []recorded{
				{"radon", types.Issue{Severity: types.Medium, File: "parsers/sarif.py", RuleID: "SarifHandlerparse_rules", Message: "B6", Location: "41"}},
				{"radon", types.Issue{Severity: types.Medium, File: "parsers/sarif.py", RuleID: "SarifHandler", Message: "A5", Location: "11"}},
				{"radon", types.Issue{Severity: types.Medium, File: "parsers/sarif.py", RuleID: "SarifHandlerhandle", Message: "A5", Location: "12"}},
			},
		},
		{
			file:   "mypy.xml",
			format: "mypy",
			want: []recorded{
				{"mypy", types.Issue{Severity: types.High, File: "src/abram/raw_data.py", RuleID: "error",
					Message: "Function is missing a type annotation  [no-untyped-def]", Location: "24"}},
				{"mypy", types.Issue{Severity: types.High, File: "src/abram/raw_data.py", RuleID: "error",
					Message: `Call to untyped function "input_checks" in typed context  [no-untyped-call]`, Location: "31"}},
				{"mypy", types.Issue{Severity: types.High, File: "src/abram/raw_data.py", RuleID: "error",
					Message: "Function is missing a return type annotation  [no-untyped-def]", Location: "68"}},
				{"mypy", types.Issue{Severity: types.Note, File: "src/abram/raw_data.py", RuleID: "note",
					Message: `Use "None" if function does not return a value`, Location: "68"}},
			},
		},
		{
			file:   "empty_mypy.xml",
			format: "mypy",
		},
		{
			file:   "complexity.csv",
			format: "lizard",
			want: []recorded{
				{"lizard", types.Issue{Severity: types.High, File: "tests/test_complexity_functions.py", RuleID: "high-complexity",
					Message: "Function 'complexity_7_function' has high cyclomatic complexity: 7", Location: "6"}},
				{"lizard", types.Issue{Severity: types.High, File: "tests/test_complexity_functions.py", RuleID: "high-complexity",
					Message: "Function 'complexity_5_function' has high cyclomatic complexity: 5", Location: "35"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			format, got := ingestFile(t, c, tt.file)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChain_Unrecognized(t *testing.T) {
	var rec recorder
	format, err := newTestChain(t).Ingest("just some build log\nnothing to see", &rec)
	require.NoError(t, err)
	assert.Equal(t, "", format)
	assert.Empty(t, rec.got)

	_, err = newTestChain(t, WithStrict(true)).Ingest(`{"unknown": true}`, &rec)
	assert.True(t, errors.Is(err, ErrUnrecognized))
	assert.Empty(t, rec.got)
}

type failingFormat struct{}

func (failingFormat) Name() string       { return "failing" }
func (failingFormat) Claims(string) bool { return true }
func (failingFormat) Extract(_ string, sink types.Observer) error {
	sink.AddIssue("failing", types.Issue{File: "half-read"})
	return errors.New("truncated input")
}

func TestChain_ExtractIsAllOrNothing(t *testing.T) {
	c := newTestChain(t, WithRecognizers(failingFormat{}, lizardFormat{}))
	var rec recorder
	format, err := c.Ingest("anything", &rec)
	require.Error(t, err)
	assert.Equal(t, "failing", format)
	assert.Contains(t, err.Error(), "truncated input")
	assert.Empty(t, rec.got)
}

func TestChain_SchemaDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pylint_schema.json"), []byte(`{"type": "string"}`), 0o644))
	c := newTestChain(t, WithSchemaDir(dir))
	format, got := ingestFile(t, c, "pylint.json")
	assert.Equal(t, "", format)
	assert.Empty(t, got)

	// Schemas absent from the directory still come from the embedded set.
	format, _ = ingestFile(t, c, "radon.json")
	assert.Equal(t, "radon", format)
}

func TestChain_BadSchemaOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "npm_schema.json"), []byte(`{not json`), 0o644))
	_, err := NewChain(WithSchemaDir(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "npm_schema.json")
}

func TestParseFiles(t *testing.T) {
	c := newTestChain(t)
	var rec recorder
	out, err := c.ParseFiles([]string{
		filepath.Join("testdata", "pylint.json"),
		filepath.Join("testdata", "complexity.csv"),
	}, &rec)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "pylint", out[0].Format)
	assert.Equal(t, 3, out[0].Issues)
	assert.Equal(t, "lizard", out[1].Format)
	assert.Len(t, rec.got, 5)

	_, err = c.ParseFiles([]string{filepath.Join("testdata", "missing.json")}, &rec)
	assert.Error(t, err)
}

func TestParseString(t *testing.T) {
	var rec recorder
	format, err := newTestChain(t).ParseString(`[]`, &rec)
	require.NoError(t, err)
	assert.Equal(t, "pylint", format)
	assert.Empty(t, rec.got)
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"a.sarif", "sub/b.sarif", "sub/c.json"} {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("{}"), 0o644))
	}
	got, err := ExpandPaths([]string{
		filepath.Join(dir, "**", "*.sarif"),
		filepath.Join(dir, "sub", "c.json"),
		filepath.Join(dir, "a.sarif"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.sarif"),
		filepath.Join(dir, "sub", "b.sarif"),
		filepath.Join(dir, "sub", "c.json"),
	}, got)

	_, err = ExpandPaths([]string{filepath.Join(dir, "*.xml")})
	assert.Error(t, err)
}

func TestExpandPaths_LiteralPathWithPatternCharacters(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "[id]", "lint.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("[]"), 0o644))

	got, err := ExpandPaths([]string{full})
	require.NoError(t, err)
	assert.Equal(t, []string{full}, got)
}

func TestChain_RecordSkipsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := newTestChain(t, WithLogger(zap.New(core).Sugar()))
	_, got := ingestFile(t, c, "multi-run.sarif")
	assert.Len(t, got, 2)
	assert.Equal(t, 1, logs.FilterMessage("skipping sarif result").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping sarif rule").Len())
}
