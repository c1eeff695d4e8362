package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/jmespath/go-jmespath"
	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/types"
)

// fanOut flattens parent objects into their child records before the row
// query runs. Inherited parent fields are copied into each child unless the
// child already carries the same key.
type fanOut struct {
	Parents  string
	Children string
	Inherit  []string
}

// queryFormat is a JSON report whose rows are selected with a JMESPath
// expression yielding [severity, file, rule, message, location].
type queryFormat struct {
	name   string
	linter string
	schema *jsonschema.Resolved
	fan    *fanOut
	rows   *jmespath.JMESPath
	levels map[string]types.Severity
	log    *zap.SugaredLogger
}

type queryDef struct {
	Name   string
	Linter string
	Schema string
	FanOut *fanOut
	Rows   string
	Levels map[string]types.Severity
}

var queryDefs = []queryDef{
	{
		Name:   "golangci",
		Linter: "golangci",
		Schema: "golangci_schema.json",
		Rows:   "Issues[].[Severity, Pos.Filename, FromLinter, Text, Pos.Line]",
		Levels: map[string]types.Severity{
			"warning": types.Warning,
			"medium":  types.Medium,
			"error":   types.High,
			"high":    types.High,
			"low":     types.Low,
		},
	},
	{
		Name:   "npm",
		Linter: "npm",
		Schema: "npm_schema.json",
		Rows:   "vulnerabilities.*.via[].[severity, name, source, title, range]",
		Levels: map[string]types.Severity{
			"critical": types.High,
			"high":     types.High,
			"moderate": types.Medium,
			"low":      types.Low,
		},
	},
	{
		Name:   "pip-audit",
		Linter: "pip-audit",
		Schema: "pipaudit_schema.json",
		FanOut: &fanOut{Parents: "dependencies[?vulns]", Children: "vulns", Inherit: []string{"name"}},
		Rows:   "[].[`null`, name, id, description, `null`]",
	},
	{
		Name:   "poetry-audit",
		Linter: "poetry-audit",
		Schema: "poetryaudit_schema.json",
		FanOut: &fanOut{Parents: "vulnerabilities[?vulns]", Children: "vulns", Inherit: []string{"name"}},
		Rows:   "[].[`null`, name, cve, advisory, `null`]",
	},
}

func newQueryFormat(s queryDef, schemas schemaSet, log *zap.SugaredLogger) (*queryFormat, error) {
	rs, err := schemas.compile(s.Schema)
	if err != nil {
		return nil, err
	}
	rows, err := jmespath.Compile(s.Rows)
	if err != nil {
		return nil, fmt.Errorf("%s: compile row query: %w", s.Name, err)
	}
	if s.FanOut != nil {
		if _, err := jmespath.Compile(s.FanOut.Parents); err != nil {
			return nil, fmt.Errorf("%s: compile parent query: %w", s.Name, err)
		}
	}
	return &queryFormat{
		name:   s.Name,
		linter: s.Linter,
		schema: rs,
		fan:    s.FanOut,
		rows:   rows,
		levels: s.Levels,
		log:    log,
	}, nil
}

func (f *queryFormat) Name() string { return f.name }

func (f *queryFormat) Claims(text string) bool {
	_, ok := schemaClaim(f.schema, text)
	return ok
}

func (f *queryFormat) Extract(text string, sink types.Observer) error {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return err
	}
	if f.fan != nil {
		flat, err := f.fan.apply(doc)
		if err != nil {
			return err
		}
		doc = flat
	}
	res, err := f.rows.Search(doc)
	if err != nil {
		return fmt.Errorf("row query: %w", err)
	}
	list, _ := res.([]any)
	for i, row := range list {
		is, ok := f.issue(row)
		if !ok {
			debugLog(f.log).Debugw("skipping empty row", "format", f.name, "row", i)
			continue
		}
		sink.AddIssue(f.linter, is)
	}
	return nil
}

// issue converts one query row; empty or all-null rows are skipped.
func (f *queryFormat) issue(row any) (types.Issue, bool) {
	cells, ok := row.([]any)
	if !ok || len(cells) < 5 {
		return types.Issue{}, false
	}
	texts := make([]string, 5)
	blank := true
	for i := range texts {
		texts[i] = cellText(cells[i])
		if texts[i] != "" {
			blank = false
		}
	}
	if blank {
		return types.Issue{}, false
	}
	sev, ok := f.levels[strings.ToLower(texts[0])]
	if !ok {
		sev = types.Undefined
	}
	return types.Issue{
		Severity: sev,
		File:     texts[1],
		RuleID:   texts[2],
		Message:  texts[3],
		Location: texts[4],
	}, true
}

func (fo *fanOut) apply(doc any) ([]any, error) {
	parents, err := jmespath.Search(fo.Parents, doc)
	if err != nil {
		return nil, fmt.Errorf("parent query: %w", err)
	}
	plist, _ := parents.([]any)
	var out []any
	for _, p := range plist {
		pm, ok := p.(map[string]any)
		if !ok {
			continue
		}
		children, _ := pm[fo.Children].([]any)
		for _, c := range children {
			cm, ok := c.(map[string]any)
			if !ok {
				continue
			}
			merged := make(map[string]any, len(cm)+len(fo.Inherit))
			for _, k := range fo.Inherit {
				merged[k] = pm[k]
			}
			for k, v := range cm {
				merged[k] = v
			}
			out = append(out, merged)
		}
	}
	return out, nil
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
