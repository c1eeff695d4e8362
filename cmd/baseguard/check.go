package baseguard

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/redactyl/baseguard/internal/audit"
	"github.com/redactyl/baseguard/internal/baseline"
	"github.com/redactyl/baseguard/internal/compare"
	"github.com/redactyl/baseguard/internal/counter"
	"github.com/redactyl/baseguard/internal/exitcode"
	"github.com/redactyl/baseguard/internal/gitroot"
	"github.com/redactyl/baseguard/internal/report"
	"github.com/redactyl/baseguard/internal/store"
	"github.com/redactyl/baseguard/pkg/core"
)

var (
	flagBasefile string
	flagReports  []string
	flagDetails  bool
	flagNoUpdate bool
)

var errNeedInputs = errors.New("a baseline (--basefile) and at least one report (--report-file) are required")

func init() {
	cmd := &cobra.Command{
		Use:   "check [reports...]",
		Short: "Compare reports against the baseline and exit with the verdict",
		Long: `Compare reports against the baseline.

Exit codes: 0 same, 1 worse, 2 improved, 3 baseline unreadable, 4 usage error.
On worse and improved verdicts the baseline is regenerated from the reports
unless --no-update is given.`,
		RunE: runCheck,
	}
	rootCmd.AddCommand(cmd)

	addInputFlags(cmd)
	cmd.Flags().BoolVarP(&flagDetails, "details", "d", false, "list the issues behind each regression")
	cmd.Flags().BoolVar(&flagNoUpdate, "no-update", false, "never rewrite the baseline")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagBasefile, "basefile", "b", "", "baseline file")
	cmd.Flags().StringSliceVarP(&flagReports, "report-file", "r", nil, "report file or glob (repeatable)")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if cfg.basefile == "" || len(cfg.reports) == 0 {
		return usageErr(errNeedInputs)
	}
	start := time.Now()

	snap, err := baseline.Load(cfg.basefile)
	if err != nil {
		return &exitError{code: exitcode.BaselineError, err: err}
	}
	for _, inc := range snap.Validate() {
		logger.Warnw("baseline total does not match the sum of its files",
			"linter", inc.Linter, "recorded", inc.Recorded.ToMap(), "summed", inc.Summed.ToMap())
	}

	st, _, err := core.Parse(cfg.reports, cfg.coreOptions())
	if err != nil {
		return usageErr(err)
	}

	res := compare.Compare(snap, st, compare.WithLogger(logger))
	color := report.ColorEnabled(out, cfg.noColor)
	res.ShowResults(report.NewTable(out, color))

	switch res.Status {
	case compare.Same:
		fmt.Fprintln(out, "No change detected: code quality is consistent with the baseline.")
	case compare.Worse:
		fmt.Fprintln(out, "Code quality has declined: more issues were found than in the baseline.")
		if cfg.details {
			report.IssuesTable(out, res.RegressionDetails(), color)
		} else {
			fmt.Fprintln(out, "Use --details to list the regressed issues.")
		}
	case compare.Improved:
		fmt.Fprintln(out, "Code quality has improved: fewer issues were found than in the baseline.")
	}

	if res.Status != compare.Same && !flagNoUpdate {
		if err := baseline.Save(cfg.basefile, baseline.Generate(st)); err != nil {
			return &exitError{code: exitcode.BaselineError, err: err}
		}
		fmt.Fprintf(out, "Baseline %s regenerated; commit it to accept the new counts.\n", cfg.basefile)
	}

	if cfg.audit {
		recordRun(res, st, time.Since(start))
	}

	if code := verdictCode(res.Status); code != exitcode.Same {
		return &exitError{code: code}
	}
	return nil
}

func verdictCode(v compare.Verdict) int {
	switch v {
	case compare.Worse:
		return exitcode.Worse
	case compare.Improved:
		return exitcode.Improved
	default:
		return exitcode.Same
	}
}

// recordRun appends the verdict to the audit history. Failures are logged,
// never fatal.
func recordRun(res *compare.Result, st *store.Store, d time.Duration) {
	totals := map[string]counter.Counter{}
	for _, l := range st.Linters() {
		totals[l] = st.CounterForLinter(l)
	}
	var regressed []string
	for _, l := range res.Order() {
		if res.IsWorse(l) {
			regressed = append(regressed, l)
		}
	}
	rec := audit.CreateRunRecord(cfg.root, res.Status.String(), cfg.basefile, cfg.reports, totals, regressed, d)
	rec.Commit, rec.Branch = gitroot.Head(cfg.root)
	log := audit.NewAuditLog(cfg.root)
	if err := log.LogRun(rec); err != nil {
		logger.Warnw("could not write run history", "path", log.Path(), "error", err)
		return
	}
	logger.Debugw("run recorded", "path", log.Path(), "verdict", rec.Verdict)
}
