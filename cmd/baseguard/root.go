package baseguard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/redactyl/baseguard/internal/config"
	"github.com/redactyl/baseguard/internal/exitcode"
	"github.com/redactyl/baseguard/internal/gitroot"
	"github.com/redactyl/baseguard/internal/logging"
)

var (
	flagVerbose    bool
	flagNoColor    bool
	flagConfig     string
	flagStrict     bool
	flagSchemasDir string
	flagAudit      bool

	version = "0.1.0"

	// cfg is resolved once per invocation from flags and config files.
	cfg    settings
	logger = zap.NewNop().Sugar()
)

// rootCmd is the base Cobra command for the baseguard CLI.
var rootCmd = &cobra.Command{
	Use:   "baseguard",
	Short: "Fail CI when static-analysis findings regress against a baseline",
	Long: "baseguard reads linter and scanner reports (SARIF, golangci-lint, npm audit, pip-audit, " +
		"poetry audit, pylint, radon, mypy JUnit, lizard CSV), counts findings per file and severity, " +
		"and compares them to a committed baseline.",
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// exitError carries a process exit code. A nil err means the code is the
// answer and nothing needs printing.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error { return &exitError{code: exitcode.UsageError, err: err} }

// Execute runs the baseguard CLI. It should be called by the main package.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err == nil {
		return exitcode.Same
	}
	var xe *exitError
	if errors.As(err, &xe) {
		if xe.err != nil {
			fmt.Fprintln(stderr, "error:", xe.err)
		}
		return xe.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return exitcode.UsageError
}

// setup loads configuration (CLI > local > global) and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return usageErr(err)
	}
	root := gitroot.Root(wd)

	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	} else if !errors.Is(err, config.ErrNoConfig) {
		return usageErr(err)
	}
	if flagConfig != "" {
		c, err := config.LoadFile(flagConfig)
		if err != nil {
			return usageErr(err)
		}
		lcfg = c
	} else if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	} else if !errors.Is(err, config.ErrNoConfig) {
		return usageErr(err)
	}

	cfg = resolve(root, args, lcfg, gcfg)
	l, err := logging.New(cfg.verbose)
	if err != nil {
		return usageErr(err)
	}
	logger = l
	logger.Debugw("configuration resolved", "command", cmd.Name(), "root", root,
		"basefile", cfg.basefile, "reports", cfg.reports, "strict", cfg.strict)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .baseguard.yml in the repo root)")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "fail on reports no parser recognizes")
	rootCmd.PersistentFlags().StringVar(&flagSchemasDir, "schemas-dir", "", "directory of JSON schema overrides")
	rootCmd.PersistentFlags().BoolVar(&flagAudit, "audit", false, "append each check verdict to the run history")
}
