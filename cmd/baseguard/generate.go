package baseguard

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redactyl/baseguard/internal/baseline"
	"github.com/redactyl/baseguard/internal/exitcode"
	"github.com/redactyl/baseguard/pkg/core"
)

func init() {
	cmd := &cobra.Command{
		Use:   "generate [reports...]",
		Short: "Write a fresh baseline from the given reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.basefile == "" || len(cfg.reports) == 0 {
				return usageErr(errNeedInputs)
			}
			st, outcomes, err := core.Parse(cfg.reports, cfg.coreOptions())
			if err != nil {
				return usageErr(err)
			}
			snap := baseline.Generate(st)
			if err := baseline.Save(cfg.basefile, snap); err != nil {
				return &exitError{code: exitcode.BaselineError, err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d linters, %d issues from %d reports\n",
				cfg.basefile, len(snap), st.Len(), len(outcomes))
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
	addInputFlags(cmd)
}
