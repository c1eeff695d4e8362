package baseguard

import (
	"github.com/redactyl/baseguard/internal/config"
	"github.com/redactyl/baseguard/pkg/core"
)

// settings is the effective configuration of one invocation.
type settings struct {
	root       string
	basefile   string
	reports    []string
	details    bool
	noColor    bool
	strict     bool
	schemasDir string
	audit      bool
	verbose    bool
}

func (s settings) coreOptions() core.Options {
	return core.Options{Strict: s.strict, SchemasDir: s.schemasDir, Logger: logger}
}

func resolve(root string, args []string, lcfg, gcfg config.FileConfig) settings {
	cli := append(append([]string(nil), flagReports...), args...)
	return settings{
		root:       root,
		basefile:   pickString(flagBasefile, lcfg.Basefile, gcfg.Basefile),
		reports:    pickStrings(cli, lcfg.Reports, gcfg.Reports),
		details:    pickBool(flagDetails, lcfg.Details, gcfg.Details),
		noColor:    pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		strict:     pickBool(flagStrict, lcfg.Strict, gcfg.Strict),
		schemasDir: pickString(flagSchemasDir, lcfg.SchemasDir, gcfg.SchemasDir),
		audit:      pickBool(flagAudit, lcfg.Audit, gcfg.Audit),
		verbose:    pickBool(flagVerbose, lcfg.Verbose, gcfg.Verbose),
	}
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickStrings(cli, local, global []string) []string {
	if len(cli) > 0 {
		return cli
	}
	if len(local) > 0 {
		return local
	}
	return global
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolPtr(v bool) *bool { return &v }
