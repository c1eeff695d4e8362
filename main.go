package main

import "github.com/redactyl/baseguard/cmd/baseguard"

func main() { baseguard.Execute() }
