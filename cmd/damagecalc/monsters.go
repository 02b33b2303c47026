package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMonstersCmd(a *app) *cobra.Command {
	var (
		dir string
		id  string
	)
	cmd := &cobra.Command{
		Use:   "monsters",
		Short: "List the monster table or show one monster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.monsters(dir)
			if err != nil {
				return err
			}
			if id != "" {
				m, ok := db.FindByID(id)
				if !ok {
					return fmt.Errorf("monster %q not found", id)
				}
				a.printLines(a.fmt.Monster(m))
				return nil
			}
			for _, m := range db.All() {
				fmt.Fprintf(a.out, "%-12s %-24s Lv%-4d HP %s\n", m.ID, m.Name, m.Level, a.fmt.Number(uint64(m.HP)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of extra monster YAML files (overrides monsters.dir)")
	cmd.Flags().StringVar(&id, "id", "", "show the monster with this id")
	return cmd
}
