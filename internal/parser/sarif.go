package parser

import (
	"encoding/json"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/sarif"
	"github.com/redactyl/baseguard/internal/types"
)

// sarifFormat reads SARIF logs. Each run is reported under its driver name.
type sarifFormat struct {
	schema *jsonschema.Resolved
	log    *zap.SugaredLogger
}

// sarifRun keeps results and rules undecoded so one malformed record does
// not cost the rest of the run.
type sarifRun struct {
	Tool struct {
		Driver struct {
			Name  string            `json:"name"`
			Rules []json.RawMessage `json:"rules"`
		} `json:"driver"`
	} `json:"tool"`
	Results []json.RawMessage `json:"results"`
}

func (sarifFormat) Name() string { return "sarif" }

func (f sarifFormat) Claims(text string) bool {
	_, ok := schemaClaim(f.schema, text)
	return ok
}

func (f sarifFormat) Extract(text string, sink types.Observer) error {
	var log struct {
		Runs []sarifRun `json:"runs"`
	}
	if err := json.Unmarshal([]byte(text), &log); err != nil {
		return err
	}
	for i, run := range log.Runs {
		linter := run.Tool.Driver.Name
		if len(run.Results) > 0 {
			for j, raw := range run.Results {
				var r sarif.Result
				if err := json.Unmarshal(raw, &r); err != nil {
					debugLog(f.log).Debugw("skipping sarif result", "run", i, "result", j, "error", err)
					continue
				}
				sink.AddIssue(linter, resultIssue(r))
			}
			continue
		}
		// Rule catalogues without results, e.g. policy dumps.
		for j, raw := range run.Tool.Driver.Rules {
			var rule sarif.Rule
			if err := json.Unmarshal(raw, &rule); err != nil {
				debugLog(f.log).Debugw("skipping sarif rule", "run", i, "rule", j, "error", err)
				continue
			}
			sink.AddIssue(linter, ruleIssue(rule))
		}
	}
	return nil
}

func resultIssue(r sarif.Result) types.Issue {
	is := types.Issue{
		Severity: sarif.SeverityFromLevel(r.Level),
		RuleID:   r.RuleID,
		Message:  r.Message.Text,
	}
	if len(r.Locations) > 0 {
		phys := r.Locations[0].PhysicalLocation
		is.File = phys.ArtifactLocation.URI
		if phys.Region != nil && phys.Region.StartLine > 0 {
			is.Location = strconv.Itoa(phys.Region.StartLine)
		}
	}
	return is
}

func ruleIssue(rule sarif.Rule) types.Issue {
	is := types.Issue{
		File:     rule.ID,
		RuleID:   rule.ID,
		Location: rule.Name,
		Severity: types.Undefined,
	}
	if is.Location == "" {
		is.Location = rule.ID
	}
	if rule.FullDescription != nil {
		is.Message = rule.FullDescription.Text
	}
	if rule.DefaultConfiguration != nil {
		is.Severity = sarif.SeverityFromLevel(rule.DefaultConfiguration.Level)
	}
	return is
}
