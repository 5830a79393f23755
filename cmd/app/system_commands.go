package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/invoicedash/dashboard/cmd/app/commands"
	"github.com/invoicedash/dashboard/internal/app"
	"github.com/invoicedash/dashboard/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "seed",
			Usage: "Load users, customers and invoices from a JSON fixture",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"f"},
					Required: true,
					Usage:    "Path to the JSON fixture",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				txManager, err := container.TxManager()
				if err != nil {
					return err
				}
				userRepo, err := container.UserRepository()
				if err != nil {
					return err
				}
				customerRepo, err := container.CustomerRepository()
				if err != nil {
					return err
				}
				invoiceRepo, err := container.InvoiceRepository()
				if err != nil {
					return err
				}

				file, err := os.Open(cmd.String("file"))
				if err != nil {
					return fmt.Errorf("failed to open seed file: %w", err)
				}
				defer func() { _ = file.Close() }()

				return commands.RunSeed(
					ctx,
					txManager,
					commands.SeedRepositories{
						Users:     userRepo,
						Customers: customerRepo,
						Invoices:  invoiceRepo,
					},
					container.PasswordService(),
					container.Logger(),
					commands.IOTuple{Reader: file, Writer: commands.DefaultIO().Writer},
				)
			},
		},
	}
}
