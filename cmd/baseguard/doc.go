// Package baseguard provides the command-line interface for the baseguard
// quality gate. It wires flags and config files into the parser chain, the
// baseline store and the comparison engine, and maps verdicts to exit codes.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/baseguard/cmd/baseguard"
//	func main() { baseguard.Execute() }
package baseguard
