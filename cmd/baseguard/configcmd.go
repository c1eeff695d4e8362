package baseguard

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/redactyl/baseguard/internal/config"
)

var cfgOutput string

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init [reports...]",
		Short: "Write a .baseguard.yml from the given flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := yaml.Marshal(effective())
			if err != nil {
				return err
			}
			if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
			return nil
		},
	}
	addInputFlags(initCmd)
	initCmd.Flags().StringVar(&cfgOutput, "output", ".baseguard.yml", "output file path")
	cfgCmd.AddCommand(initCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after merging flags and files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(effective()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cfgCmd.AddCommand(showCmd)
}

// effective renders the resolved settings back into the file shape.
func effective() config.FileConfig {
	return config.FileConfig{
		Basefile:   strPtr(cfg.basefile),
		Reports:    cfg.reports,
		Details:    boolPtr(cfg.details),
		NoColor:    boolPtr(cfg.noColor),
		Strict:     boolPtr(cfg.strict),
		SchemasDir: strPtr(cfg.schemasDir),
		Audit:      boolPtr(cfg.audit),
		Verbose:    boolPtr(cfg.verbose),
	}
}
