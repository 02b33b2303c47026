package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/damagecalc/internal/api"
	"github.com/cory-johannsen/damagecalc/internal/game/intake"
	"github.com/cory-johannsen/damagecalc/internal/observability"
	"github.com/cory-johannsen/damagecalc/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := a.monsters("")
			if err != nil {
				return err
			}
			store, closeStore, err := a.openStore(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}

			handler := api.NewHandler(api.Deps{
				Monsters:     db,
				Store:        store,
				Intake:       intake.NewFixed(intake.SampleLoadout()),
				Simulation:   a.cfg.Simulation,
				MaxBodyBytes: a.cfg.HTTP.MaxBodyBytes,
				Logger:       observability.Component(a.logger, "api"),
			})

			a.logger.Info("damagecalc starting",
				zap.String("addr", a.cfg.HTTP.Addr()),
				zap.String("storage", a.cfg.Storage.Backend),
				zap.Int("monsters", db.Len()),
			)
			lc := server.NewLifecycle(a.logger)
			lc.Add("storage", server.Closer(closeStore))
			lc.Add("http", server.NewHTTPService(a.cfg.HTTP, handler.Router(), observability.Component(a.logger, "http")))
			return lc.Run(ctx)
		},
	}
}
