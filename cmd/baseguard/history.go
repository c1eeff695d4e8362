package baseguard

import (
	"github.com/spf13/cobra"

	"github.com/redactyl/baseguard/internal/audit"
	"github.com/redactyl/baseguard/internal/report"
)

func init() {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded check verdicts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := audit.NewAuditLog(cfg.root).LoadHistory()
			if err != nil {
				return usageErr(err)
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			out := cmd.OutOrStdout()
			report.HistoryTable(out, records, report.ColorEnabled(out, cfg.noColor))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many runs (0 = all)")
	rootCmd.AddCommand(cmd)
}
