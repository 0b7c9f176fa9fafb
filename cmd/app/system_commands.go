package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/onetimepassgen/cmd/app/commands"
	"github.com/allisson/onetimepassgen/internal/app"
	"github.com/allisson/onetimepassgen/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, config.Load(), version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				db, err := container.DB()
				if err != nil {
					return err
				}

				return commands.RunMigrations(db, cfg.DBDriver, container.Logger())
			},
		},
	}
}
