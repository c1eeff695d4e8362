package baseguard

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redactyl/baseguard/internal/report"
	"github.com/redactyl/baseguard/internal/types"
	"github.com/redactyl/baseguard/pkg/core"
)

var flagFormat string

func init() {
	cmd := &cobra.Command{
		Use:   "parse [reports...]",
		Short: "Print the normalized issues of the given reports",
		RunE:  runParse,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().StringSliceVarP(&flagReports, "report-file", "r", nil, "report file or glob (repeatable)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "output format: text | json | sarif")
}

func runParse(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if len(cfg.reports) == 0 {
		return usageErr(fmt.Errorf("at least one report (--report-file) is required"))
	}

	var (
		obs   types.Observer
		flush func() error
	)
	switch flagFormat {
	case "text":
		obs = report.NewConsole(out, report.ColorEnabled(out, cfg.noColor))
		flush = func() error { return nil }
	case "json":
		c := &report.JSONCollector{Details: []types.Detail{}}
		obs = c
		flush = func() error { return report.WriteJSON(out, c.Details) }
	case "sarif":
		e := report.NewSARIFExporter()
		obs = e
		flush = func() error { return e.Write(out) }
	default:
		return usageErr(fmt.Errorf("unknown --format %q; supported: text, json, sarif", flagFormat))
	}

	_, outcomes, err := core.Parse(cfg.reports, cfg.coreOptions(), obs)
	if err != nil {
		return usageErr(err)
	}
	for _, o := range outcomes {
		logger.Debugw("report parsed", "path", o.Path, "format", o.Format, "issues", o.Issues)
	}
	return flush()
}
