package main

import (
	"fmt"

	"uprala/internal/auth"
	"uprala/internal/utils"

	"github.com/urfave/cli/v2"
)

var nanoidCommand = &cli.Command{
	Name:  "nanoid",
	Usage: "Generate NanoIDs for use in seed files",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of IDs to generate",
			Value:   1,
		},
	},
	Action: func(c *cli.Context) error {
		count := c.Int("count")
		for range count {
			fmt.Println(utils.NanoID())
		}
		return nil
	},
}

var hashPasswordCommand = &cli.Command{
	Name:      "hash-password",
	Usage:     "Print a bcrypt hash for an admin password",
	ArgsUsage: "<password>",
	Action: func(c *cli.Context) error {
		password := c.Args().First()
		if password == "" {
			return fmt.Errorf("password argument is required")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		fmt.Println(hash)
		return nil
	},
}
