package main

import (
	"fmt"

	"uprala/internal/db"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Manage the database schema",
	Subcommands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply all pending migrations",
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c.String("env-prefix"))
				if err != nil {
					return err
				}

				return migrateUp(cfg, newLogger(cfg))
			},
		},
		{
			Name:  "down",
			Usage: "Roll back migrations",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "steps",
					Usage: "Number of migrations to roll back",
					Value: 1,
				},
			},
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c.String("env-prefix"))
				if err != nil {
					return err
				}

				migrator, err := db.NewMigrator(cfg.DatabaseURL, newLogger(cfg))
				if err != nil {
					return err
				}
				defer func() { _ = migrator.Close() }()

				return migrator.Down(c.Int("steps"))
			},
		},
		{
			Name:  "version",
			Usage: "Print the current schema version",
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c.String("env-prefix"))
				if err != nil {
					return err
				}

				migrator, err := db.NewMigrator(cfg.DatabaseURL, newLogger(cfg))
				if err != nil {
					return err
				}
				defer func() { _ = migrator.Close() }()

				version, dirty, err := migrator.Version()
				if err != nil {
					return fmt.Errorf("failed to read schema version: %w", err)
				}

				fmt.Printf("version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
	},
}
