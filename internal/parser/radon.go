package parser

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/types"
)

// Entries graded below A5 are not reported.
const (
	radonMinRank       = "A"
	radonMinComplexity = 5
)

type radonFormat struct {
	schema *jsonschema.Resolved
	log    *zap.SugaredLogger
}

type radonBlock struct {
	Type       string `json:"type"`
	Rank       string `json:"rank"`
	Complexity int    `json:"complexity"`
	Lineno     int    `json:"lineno"`
	Name       string `json:"name"`
	Classname  string `json:"classname"`
}

func (radonFormat) Name() string { return "radon" }

func (f radonFormat) Claims(text string) bool {
	_, ok := schemaClaim(f.schema, text)
	return ok
}

func (f radonFormat) Extract(text string, sink types.Observer) error {
	var report map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		return err
	}
	files := make([]string, 0, len(report))
	for name := range report {
		files = append(files, name)
	}
	sort.Strings(files)
	log := debugLog(f.log)
	for _, file := range files {
		var blocks []json.RawMessage
		// Files radon failed to analyse hold {"error": ...} instead of a list.
		if err := json.Unmarshal(report[file], &blocks); err != nil {
			log.Debugw("skipping radon file entry", "file", file, "error", err)
			continue
		}
		for i, raw := range blocks {
			var b radonBlock
			if err := json.Unmarshal(raw, &b); err != nil {
				log.Debugw("skipping radon block", "file", file, "block", i, "error", err)
				continue
			}
			if is, ok := radonIssue(file, b); ok {
				sink.AddIssue(f.Name(), is)
			}
		}
	}
	return nil
}

func radonIssue(file string, b radonBlock) (types.Issue, bool) {
	var rule string
	switch b.Type {
	case "class", "function":
		rule = b.Name
	case "method":
		rule = b.Classname + b.Name
	default:
		return types.Issue{}, false
	}
	if !radonAboveThreshold(b.Rank, b.Complexity) {
		return types.Issue{}, false
	}
	return types.Issue{
		Severity: types.Medium,
		File:     file,
		RuleID:   rule,
		Message:  b.Rank + strconv.Itoa(b.Complexity),
		Location: strconv.Itoa(b.Lineno),
	}, true
}

// radonAboveThreshold compares the grade letter first and the complexity
// number second, so A10 ranks above A5.
func radonAboveThreshold(rank string, complexity int) bool {
	if rank > radonMinRank {
		return true
	}
	return rank == radonMinRank && complexity >= radonMinComplexity
}
