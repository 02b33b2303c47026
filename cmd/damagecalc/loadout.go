package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/damagecalc/internal/game/equipment"
	"github.com/cory-johannsen/damagecalc/internal/storage"
)

func newLoadoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loadout",
		Short: "Save, show and remove loadouts in the configured store",
	}

	var src loadoutSource
	save := &cobra.Command{
		Use:   "save KEY",
		Short: "Store a loadout under KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.loadout(cmd.Context(), src)
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(s storage.Store) error {
				if err := storage.PutJSON(cmd.Context(), s, args[0], set); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "saved %s (%d slots equipped)\n", args[0], len(set.Equipped()))
				return nil
			})
		},
	}
	src.register(save)

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the loadout stored under KEY as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s storage.Store) error {
				set, err := storage.GetJSON[equipment.Set](cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(set)
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm KEY",
		Short: "Remove the loadout stored under KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s storage.Store) error {
				return s.Remove(cmd.Context(), args[0])
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every loadout in the configured namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd, func(s storage.Store) error {
				return s.Clear(cmd.Context())
			})
		},
	}

	cmd.AddCommand(save, get, rm, clearCmd)
	return cmd
}

func (a *app) withStore(cmd *cobra.Command, fn func(storage.Store) error) error {
	if err := a.requirePersistentStore(); err != nil {
		return err
	}
	store, closeFn, err := a.openStore(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(store)
}
