package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/redactyl/baseguard/internal/compare"
	"github.com/redactyl/baseguard/internal/counter"
	"github.com/redactyl/baseguard/internal/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	fileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	linterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	severityStyles = map[types.Severity]lipgloss.Style{
		types.High:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		types.Medium:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		types.Low:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		types.Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		types.Note:      lipgloss.NewStyle().Faint(true),
		types.Undefined: lipgloss.NewStyle().Faint(true),
	}
)

// ColorEnabled reports whether output to w should be coloured. NO_COLOR and
// noColor always win; otherwise w must be a terminal.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Table prints one bordered table per regressed linter.
type Table struct {
	w     io.Writer
	color bool
}

func NewTable(w io.Writer, color bool) *Table {
	return &Table{w: w, color: color}
}

var _ compare.Printer = (*Table)(nil)

// PrintLinterResults implements compare.Printer.
func (t *Table) PrintLinterResults(linter string, rows []compare.Row) {
	fmt.Fprintf(t.w, "\n%s\n", t.style(titleStyle, linter))
	tbl := tablewriter.NewWriter(t.w)
	tbl.Header([]string{"STATUS", "FILE", "Previous Findings", "Current Findings", "Difference"})
	for _, r := range rows {
		_ = tbl.Append([]string{
			t.style(failStyle, "FAIL"),
			t.style(fileStyle, r.Entity),
			strings.Join(r.Old.Lines(), "\n"),
			strings.Join(r.New.Lines(), "\n"),
			t.difference(r.Old, r.New),
		})
	}
	_ = tbl.Render()
}

// difference renders previous minus current for every severity and the sum.
// Negative values are regressions.
func (t *Table) difference(prev, cur counter.Counter) string {
	delta := prev.Delta(cur)
	lines := make([]string, 0, types.NumSeverities+1)
	sum := 0
	for _, s := range types.Severities {
		d := delta.Get(s)
		sum += d
		lines = append(lines, t.signed(s.String(), d))
	}
	lines = append(lines, t.signed("Delta", sum))
	return strings.Join(lines, "\n")
}

func (t *Table) signed(label string, d int) string {
	text := fmt.Sprintf("%s: %+d", label, d)
	if d < 0 {
		return t.style(badStyle, text)
	}
	return t.style(goodStyle, text)
}

func (t *Table) style(s lipgloss.Style, text string) string {
	if !t.color {
		return text
	}
	return s.Render(text)
}

// IssuesTable prints the regressed issue details.
func IssuesTable(w io.Writer, details []types.Detail, color bool) {
	t := &Table{w: w, color: color}
	if len(details) == 0 {
		fmt.Fprintln(w, "No regressed issues to show")
		return
	}
	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Linter", "File", "Severity", "Message", "Line"})
	for _, d := range details {
		sev := d.Severity
		if s, err := types.ParseSeverity(sev); err == nil {
			sev = t.style(severityStyles[s], sev)
		}
		_ = tbl.Append([]string{
			t.style(linterStyle, d.Linter),
			t.style(fileStyle, d.File),
			sev,
			d.Message,
			d.Location,
		})
	}
	_ = tbl.Render()
}
