package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/types"
)

const (
	lizardColumns   = 11
	lizardSample    = 5
	lizardThreshold = 5
)

// lizardFormat reads `lizard --csv` output. Columns: nloc, ccn, tokens,
// params, length, location, file, function, long name, start, end.
type lizardFormat struct {
	log *zap.SugaredLogger
}

func (lizardFormat) Name() string { return "lizard" }

func (lizardFormat) Claims(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !strings.Contains(trimmed, ",") {
		return false
	}
	lines := strings.SplitN(trimmed, "\n", lizardSample+1)
	if len(lines) > lizardSample {
		lines = lines[:lizardSample]
	}
	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil || len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if !validLizardRow(row) {
			return false
		}
	}
	return true
}

func validLizardRow(row []string) bool {
	if len(row) != lizardColumns {
		return false
	}
	for i := 0; i < 5; i++ {
		if _, err := strconv.Atoi(strings.TrimSpace(row[i])); err != nil {
			return false
		}
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(row[9]))
	end, err2 := strconv.Atoi(strings.TrimSpace(row[10]))
	if err1 != nil || err2 != nil || start <= 0 || end <= 0 || start > end {
		return false
	}
	if !strings.ContainsAny(row[6], `/\`) {
		return false
	}
	return strings.TrimSpace(row[7]) != ""
}

func (f lizardFormat) Extract(text string, sink types.Observer) error {
	log := debugLog(f.log)
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				log.Debugw("skipping unreadable lizard row", "error", err)
				continue
			}
			return err
		}
		if len(row) < lizardColumns {
			log.Debugw("skipping short lizard row", "columns", len(row))
			continue
		}
		ccn, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			log.Debugw("skipping lizard row without ccn", "ccn", row[1])
			continue
		}
		start, err := strconv.Atoi(strings.TrimSpace(row[9]))
		if err != nil || start <= 0 {
			log.Debugw("skipping lizard row without start line", "start", row[9])
			continue
		}
		if ccn < lizardThreshold {
			continue
		}
		sink.AddIssue(f.Name(), types.Issue{
			Severity: types.High,
			File:     row[6],
			RuleID:   "high-complexity",
			Message:  fmt.Sprintf("Function '%s' has high cyclomatic complexity: %d", row[7], ccn),
			Location: strings.TrimSpace(row[9]),
		})
	}
}
