package main

import (
	"context"

	"github.com/emmanueletti/lightbnb/internal/config"
	"github.com/emmanueletti/lightbnb/internal/database"
	"github.com/emmanueletti/lightbnb/internal/lib/utils"
	"github.com/emmanueletti/lightbnb/internal/logger"
	"github.com/emmanueletti/lightbnb/internal/repository"
	"github.com/emmanueletti/lightbnb/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand once config is loaded.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "lightbnb",
		Short:        "Manage the LightBnB database",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.NewLogger(cfg.Observability)
			return nil
		},
	}

	root.AddCommand(
		newMigrateCmd(a),
		newHealthCmd(a),
		newSeedCmd(a),
		newUsersCmd(a),
		newPropertiesCmd(a),
		newReservationsCmd(a),
	)

	return root
}

// withServices connects to the database, runs fn with services over the
// pool and closes the pool afterwards.
func (a *app) withServices(ctx context.Context, fn func(*service.Services) error) error {
	db, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(service.NewServices(repository.NewRepositories(db.Pool), &a.log))
}

func (a *app) connect(ctx context.Context) (*database.Database, error) {
	return database.New(ctx, a.cfg, &a.log)
}

func printJSON(cmd *cobra.Command, v any) error {
	return utils.WriteJSON(cmd.OutOrStdout(), v)
}
