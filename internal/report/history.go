package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/baseguard/internal/audit"
)

// HistoryTable prints recorded runs in the order given.
func HistoryTable(w io.Writer, records []audit.RunRecord, color bool) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No recorded runs")
		return
	}
	t := &Table{w: w, color: color}
	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Time", "Verdict", "Commit", "Branch", "Regressed", "Baseline"})
	for _, r := range records {
		verdict := r.Verdict
		switch verdict {
		case "WORSE":
			verdict = t.style(badStyle, verdict)
		case "IMPROVED":
			verdict = t.style(goodStyle, verdict)
		}
		commit := r.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		_ = tbl.Append([]string{
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			verdict,
			commit,
			r.Branch,
			strings.Join(r.Regressed, ", "),
			r.BaselineFile,
		})
	}
	_ = tbl.Render()
}
