package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/99minutos/auth-api/internal/infrastructure/security"
)

func hashPasswordCmd() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Print the bcrypt hash of a password",
		ArgsUsage: "<password>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt cost factor",
				Value: security.DefaultCost,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("hash-password: exactly one password argument is required")
			}
			hash, err := security.NewBcryptHasher(c.Int("cost")).Hash(c.Args().First())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, hash)
			return err
		},
	}
}
