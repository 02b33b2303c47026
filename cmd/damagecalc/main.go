// Package main is the damagecalc command line: it resolves and simulates
// damage against the monster table, manages saved loadouts and serves the
// HTTP API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newApp(os.Stdout)).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
