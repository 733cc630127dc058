// @title           Auth API
// @version         1.0.0
// @description     User registration, login and token-gated routes.
// @host            localhost:4001
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "auth-api",
		Usage: "User registration and token authentication service",
		Commands: []*cli.Command{
			serveCmd(),
			hashPasswordCmd(),
		},
		DefaultCommand: "serve",
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "auth-api:", err)
		cancel()
		os.Exit(1)
	}
}
