package baseguard

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var ciTemplates = map[string]struct {
	path    string
	content string
}{
	"github": {
		path: ".github/workflows/baseguard.yml",
		content: `name: baseguard
on: [pull_request]
jobs:
  quality-gate:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.24'
      - run: go install github.com/redactyl/baseguard@latest
      # produce your linter reports here, e.g. reports/pylint.json
      - run: baseguard check -b baseline.json -r 'reports/**/*' --details --no-update
`,
	},
	"gitlab": {
		path: ".gitlab-ci.yml",
		content: `stages: [quality]
baseguard:
  stage: quality
  image: golang:1.24
  script:
    - go install github.com/redactyl/baseguard@latest
    - baseguard check -b baseline.json -r 'reports/**/*' --details --no-update
  artifacts:
    when: always
    paths:
      - reports/
`,
	},
	"bitbucket": {
		path: "bitbucket-pipelines.yml",
		content: `pipelines:
  default:
    - step:
        name: baseguard quality gate
        image: golang:1.24
        caches:
          - go
        script:
          - go install github.com/redactyl/baseguard@latest
          - baseguard check -b baseline.json -r 'reports/**/*' --details --no-update
`,
	},
	"azure": {
		path: "azure-pipelines.yml",
		content: `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.24.x'
- script: |
    go install github.com/redactyl/baseguard@latest
    baseguard check -b baseline.json -r 'reports/**/*' --details --no-update
  displayName: 'baseguard quality gate'
`,
	},
}

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider, dir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tpl, ok := ciTemplates[provider]
			if !ok {
				return usageErr(fmt.Errorf("unknown --provider %q. Supported: github, gitlab, bitbucket, azure", provider))
			}
			path := filepath.Join(dir, tpl.path)
			// ensure parent directories exist if needed
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(tpl.content), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab | bitbucket | azure")
	initCmd.Flags().StringVar(&dir, "dir", ".", "repository directory to write into")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}
