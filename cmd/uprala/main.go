package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "uprala",
		Usage: "Saanjha Uprala relief coordination API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-prefix",
				Aliases: []string{"p"},
				Usage:   "Environment variable prefix",
				Value:   "",
			},
		},
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			seedCommand,
			nanoidCommand,
			hashPasswordCommand,
			configCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
