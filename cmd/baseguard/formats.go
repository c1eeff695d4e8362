package baseguard

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redactyl/baseguard/internal/parser"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "formats",
		Short: "List recognized report formats in the order they are tried",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chain, err := parser.NewChain(parser.WithSchemaDir(cfg.schemasDir), parser.WithLogger(logger))
			if err != nil {
				return usageErr(err)
			}
			for i, name := range chain.Formats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name)
			}
			return nil
		},
	})
}
