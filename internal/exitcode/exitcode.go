// Package exitcode defines the process exit codes of the baseguard CLI.
package exitcode

const (
	// Same means no regression and no improvement against the baseline.
	Same = 0
	// Worse means at least one linter regressed.
	Worse = 1
	// Improved means nothing regressed and something got better.
	Improved = 2
	// BaselineError means the baseline could not be read or decoded.
	BaselineError = 3
	// UsageError covers bad flags, unreadable reports and other input errors.
	UsageError = 4
)
