// Package audit keeps a JSON Lines history of gate decisions so a team can
// see when a baseline moved and why.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redactyl/baseguard/internal/counter"
)

type RunRecord struct {
	Timestamp    time.Time                 `json:"timestamp"`
	RunID        string                    `json:"run_id"`
	Root         string                    `json:"root"`
	Commit       string                    `json:"commit,omitempty"`
	Branch       string                    `json:"branch,omitempty"`
	Verdict      string                    `json:"verdict"`
	BaselineFile string                    `json:"baseline_file"`
	Reports      []string                  `json:"reports"`
	Regressed    []string                  `json:"regressed,omitempty"`
	Totals       map[string]map[string]int `json:"totals"`
	Duration     string                    `json:"duration"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog stores the history under .git when root is a checkout, and in
// a dotfile next to it otherwise.
func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".baseguard_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "baseguard_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns the records newest first. Reading stops at the first
// line that does not decode.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", record.Timestamp.Unix())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

func CreateRunRecord(
	root string,
	verdict string,
	baselineFile string,
	reports []string,
	totals map[string]counter.Counter,
	regressed []string,
	duration time.Duration,
) RunRecord {
	byLinter := make(map[string]map[string]int, len(totals))
	for linter, c := range totals {
		byLinter[linter] = c.ToMap()
	}
	return RunRecord{
		Timestamp:    time.Now().UTC(),
		Root:         root,
		Verdict:      verdict,
		BaselineFile: baselineFile,
		Reports:      reports,
		Regressed:    regressed,
		Totals:       byLinter,
		Duration:     duration.String(),
	}
}
