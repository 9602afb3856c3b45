package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/locksetdev/vault/cmd/app/commands"
	"github.com/locksetdev/vault/internal/app"
	"github.com/locksetdev/vault/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "register-kek",
			Usage: "Register a new Key Encryption Key (KEK) referencing an external KMS key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kms-key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "KMS key URI (e.g., awskms://..., gcpkms://..., base64key://...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				kekUseCase, err := container.KekUseCase()
				if err != nil {
					return err
				}

				return commands.RunRegisterKek(
					ctx,
					kekUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key"),
				)
			},
		},
		{
			Name:  "list-keks",
			Usage: "List all registered Key Encryption Keys, newest first",
			Flags: []cli.Flag{
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
				defer func() { _ = container.Shutdown(ctx) }()

				kekUseCase, err := container.KekUseCase()
				if err != nil {
					return err
				}

				return commands.RunListKeks(
					ctx,
					kekUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "remove-kek",
			Usage: "Remove a Key Encryption Key that no DEK references",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "KEK ID (UUID)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				kekUseCase, err := container.KekUseCase()
				if err != nil {
					return err
				}

				return commands.RunRemoveKek(
					ctx,
					kekUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
				)
			},
		},
		{
			Name:  "rotate-dek",
			Usage: "Generate a new Data Encryption Key (DEK) for subsequent writes",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "algorithm",
					Aliases: []string{"alg"},
					Value:   "",
					Usage:   "Encryption algorithm (aes-gcm or chacha20-poly1305, defaults to DEK_ALGORITHM)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				dekUseCase, err := container.DekUseCase()
				if err != nil {
					return err
				}

				algorithm := cmd.String("algorithm")
				if algorithm == "" {
					algorithm = cfg.DekAlgorithm
				}

				return commands.RunRotateDek(
					ctx,
					dekUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					algorithm,
				)
			},
		},
	}
}
