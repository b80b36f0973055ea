// Package main is the entry point for the passstore CLI.
package main

import (
	"passstore/cli/cmd"
)

func main() {
	cmd.Execute()
}
