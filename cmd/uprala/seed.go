package main

import (
	"context"
	"fmt"

	"uprala/internal/db"
	"uprala/internal/seed"
	"uprala/internal/store"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with reference data, villages and the admin user",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "admin-username",
			Usage: "Username of the seeded admin",
			Value: "admin",
		},
		&cli.StringFlag{
			Name:    "admin-password",
			Usage:   "Password of the seeded admin; the admin is skipped when empty",
			EnvVars: []string{"SEED_ADMIN_PASSWORD"},
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String("env-prefix"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)
		ctx := context.Background()

		// Connect to database
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger.Info("connected to database")

		seeder := seed.New(
			logger,
			store.NewLookupRepository(pool),
			store.NewNGORepository(pool),
			store.NewVillageRepository(pool),
			store.NewContactRepository(pool),
			store.NewAdminUserRepository(pool),
		)

		err = seeder.Run(ctx, seed.Admin{
			Username: c.String("admin-username"),
			Password: c.String("admin-password"),
		})
		if err != nil {
			return err
		}

		logger.Info("database seeded successfully")

		return nil
	},
}
