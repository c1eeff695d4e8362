// Package core provides a small, stable facade over baseguard's internal
// packages for programs that want the gate without the CLI.
//
// Example:
//
//	res, _, err := core.Compare("baseline.json", []string{"reports/*.json"}, core.Options{})
//	if err != nil { /* handle */ }
//	if res.Status == core.Worse { /* fail the build */ }
package core
