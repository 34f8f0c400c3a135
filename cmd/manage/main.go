// Command manage bundles the one-shot administration tasks.
//
//	go run ./cmd/manage createuser --username admin --password s3cret --superuser
//	go run ./cmd/manage telegramcheck
package main

import (
	"os"

	"github.com/lshigami/examguard/internal/logger"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "manage",
		Usage: "Administer the exam server",
		Commands: []*cli.Command{
			{
				Name:  "createuser",
				Usage: "Add an account, optionally with superuser rights",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Usage:    "login name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "password (at least 6 characters)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "superuser",
						Usage: "grant access to the dashboard and test upload",
					},
				},
				Action: CreateUser,
			},
			{
				Name:   "telegramcheck",
				Usage:  "Send one message with the configured bot token and admin chat id",
				Action: TelegramCheck,
			},
		},
	}
}

func main() {
	logger.Init()
	if err := newApp().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
