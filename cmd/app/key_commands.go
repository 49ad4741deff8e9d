package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/securemessenger/cmd/app/commands"
	"github.com/allisson/securemessenger/internal/app"
	"github.com/allisson/securemessenger/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master key file for message encryption",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "path",
					Aliases: []string{"p"},
					Usage:   "Key file to create (defaults to MASTER_KEY_FILE)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				path := cmd.String("path")
				if path == "" {
					path = cfg.MasterKeyFile
				}

				return commands.RunCreateMasterKey(
					container.Logger(),
					commands.DefaultIO().Writer,
					path,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "derive-room-key",
			Usage: "Derive the subkey for a room and user from the active master key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "room",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Room ID",
				},
				&cli.StringFlag{
					Name:     "user",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User ID",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				cfg.MetricsEnabled = false
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				encryption, err := container.EncryptionUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeriveRoomKey(
					ctx,
					encryption,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("room"),
					cmd.String("user"),
					cmd.String("format"),
				)
			},
		},
	}
}
