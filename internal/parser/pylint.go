package parser

import (
	"encoding/json"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/types"
)

type pylintFormat struct {
	schema *jsonschema.Resolved
	log    *zap.SugaredLogger
}

type pylintMessage struct {
	Type    string `json:"type"`
	Path    string `json:"path"`
	Symbol  string `json:"symbol"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}

func (pylintFormat) Name() string { return "pylint" }

func (f pylintFormat) Claims(text string) bool {
	_, ok := schemaClaim(f.schema, text)
	return ok
}

func (f pylintFormat) Extract(text string, sink types.Observer) error {
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raws); err != nil {
		return err
	}
	for i, raw := range raws {
		var m pylintMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			debugLog(f.log).Debugw("skipping pylint message", "index", i, "error", err)
			continue
		}
		sink.AddIssue(f.Name(), types.Issue{
			Severity: pylintSeverity(m.Type),
			File:     m.Path,
			RuleID:   m.Symbol,
			Message:  m.Message,
			Location: strconv.Itoa(m.Line),
		})
	}
	return nil
}

func pylintSeverity(kind string) types.Severity {
	switch kind {
	case "error":
		return types.High
	case "warning":
		return types.Medium
	case "refactor", "convention":
		return types.Low
	default:
		return types.Undefined
	}
}
