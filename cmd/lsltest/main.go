// Package main provides lsltest, a golden file test tool for LSL scripts.
package main

import (
	"fmt"
	"os"

	"learnscript/cmd/lsltest/internal/cli"
)

func main() {
	app := cli.NewApp()
	if err := app.CreateRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
