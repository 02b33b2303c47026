package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/damagecalc/internal/game/damage"
	"github.com/cory-johannsen/damagecalc/internal/game/dice"
	"github.com/cory-johannsen/damagecalc/internal/game/monster"
)

func (a *app) findMonster(dir, id string) (monster.Monster, error) {
	db, err := a.monsters(dir)
	if err != nil {
		return monster.Monster{}, err
	}
	m, ok := db.FindByID(id)
	if !ok {
		return monster.Monster{}, fmt.Errorf("monster %q not found", id)
	}
	return m, nil
}

func newResolveCmd(a *app) *cobra.Command {
	var (
		monsterID string
		dir       string
		src       loadoutSource
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Compute the damage profile of a loadout against a monster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mon, err := a.findMonster(dir, monsterID)
			if err != nil {
				return err
			}
			set, err := a.loadout(cmd.Context(), src)
			if err != nil {
				return err
			}
			res, err := damage.Resolve(set, mon)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s, total attack %s\n", monsterLabel(mon), a.fmt.Number(set.TotalAttack()))
			a.printLines(a.fmt.Result(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&monsterID, "monster", "", "monster id")
	cmd.Flags().StringVar(&dir, "dir", "", "directory of extra monster YAML files (overrides monsters.dir)")
	src.register(cmd)
	_ = cmd.MarkFlagRequired("monster")
	return cmd
}

func monsterLabel(m monster.Monster) string {
	return fmt.Sprintf("%s [%s]", m.Name, m.ID)
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		monsterID string
		dir       string
		hits      int
		seed      uint64
		verbose   bool
		src       loadoutSource
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Sample randomized hits of a loadout against a monster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mon, err := a.findMonster(dir, monsterID)
			if err != nil {
				return err
			}
			set, err := a.loadout(cmd.Context(), src)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("hits") {
				hits = a.cfg.Simulation.DefaultHits
			}
			if hits > a.cfg.Simulation.MaxHits {
				return fmt.Errorf("hits %d exceeds simulation.max_hits %d", hits, a.cfg.Simulation.MaxHits)
			}

			var source dice.Source
			switch {
			case cmd.Flags().Changed("seed"):
				source = dice.NewSeededSource(seed)
			case a.cfg.Simulation.Seed != 0:
				source = dice.NewSeededSource(a.cfg.Simulation.Seed)
			default:
				source = dice.NewCryptoSource()
			}

			sim, err := damage.NewCalculator(source, a.logger).Simulate(set, mon, hits)
			if err != nil {
				return err
			}
			a.logger.Debug("simulation finished", zap.Int("hits", len(sim.Hits)))

			if verbose {
				for i, h := range sim.Hits {
					fmt.Fprintf(a.out, "hit %d: %s\n", i+1, a.fmt.Number(uint64(h)))
				}
			}
			fmt.Fprintf(a.out, "%s\n", monsterLabel(mon))
			a.printLines(a.fmt.Simulation(sim))
			return nil
		},
	}
	cmd.Flags().StringVar(&monsterID, "monster", "", "monster id")
	cmd.Flags().StringVar(&dir, "dir", "", "directory of extra monster YAML files (overrides monsters.dir)")
	cmd.Flags().IntVar(&hits, "hits", 0, "number of hits to sample (default simulation.default_hits)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a repeatable run")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every sampled hit")
	src.register(cmd)
	_ = cmd.MarkFlagRequired("monster")
	return cmd
}
