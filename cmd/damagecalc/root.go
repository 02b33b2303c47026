package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:                "damagecalc",
		Short:              "Combat damage calculator",
		Long:               `damagecalc resolves the damage a five-slot loadout deals to a monster, simulates randomized hits, and serves the same operations over HTTP.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.SetOut(a.out)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to configuration file (defaults and DAMAGECALC_* environment when empty)")
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "language for number formatting, e.g. en or ja")

	root.AddCommand(
		newMonstersCmd(a),
		newResolveCmd(a),
		newSimulateCmd(a),
		newLoadoutCmd(a),
		newServeCmd(a),
	)
	return root
}
