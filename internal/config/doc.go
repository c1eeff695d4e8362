// Package config loads baseguard configuration from local and global YAML
// files. The CLI applies precedence: flags, then the repo-local file, then the
// global file.
package config
