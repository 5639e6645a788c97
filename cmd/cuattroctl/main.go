// Command cuattroctl is an operator CLI for the Cuattro API.
//
//	cuattroctl [-api URL] [-token T] menu
//	cuattroctl suggest "almoço para 20 pessoas"
//	cuattroctl category ensure Bebidas
//	cuattroctl import catalog.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cuattro/internal/apperr"
	"cuattro/internal/auth"
	"cuattro/internal/client"
	"cuattro/internal/logging"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cuattroctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", envOr("CUATTRO_API_URL", "http://localhost:8000"), "API base URL")
	token := fs.String("token", os.Getenv("CUATTRO_TOKEN"), "bearer token")
	secret := fs.String("jwt-secret", os.Getenv("JWT_SECRET"), "mint short-lived admin tokens with this secret instead of -token")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := logging.New("production", level, "console")
	defer logger.Sync()

	var tokens client.TokenSource
	switch {
	case *secret != "":
		tokens = client.NewRefreshingToken(mintAdmin([]byte(*secret)))
	case *token != "":
		tokens = client.StaticToken(*token)
	}
	api := client.New(*apiURL, tokens, client.WithLogger(logger))

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch rest[0] {
	case "menu":
		err = printMenu(ctx, api, stdout)
	case "suggest":
		if len(rest) < 2 {
			usage(stderr)
			return 2
		}
		err = suggest(ctx, api, strings.Join(rest[1:], " "), stdout)
	case "category":
		if len(rest) < 3 || rest[1] != "ensure" {
			usage(stderr)
			return 2
		}
		err = ensureCategory(ctx, api, strings.Join(rest[2:], " "), stdout)
	case "import":
		if len(rest) != 2 {
			usage(stderr)
			return 2
		}
		err = importCatalog(ctx, api, rest[1], stdout, logger)
	default:
		usage(stderr)
		return 2
	}

	if err != nil {
		fmt.Fprintln(stderr, apperr.UserMessage(err))
		logger.Debug("command failed", zap.String("command", rest[0]), zap.Error(err))
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage: cuattroctl [flags] <command>

commands:
  menu                     print the grouped menu
  suggest <text>           ask the menu assistant
  category ensure <name>   find or create a category
  import <catalog.yaml>    create items from a seed file`)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mintAdmin(secret []byte) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		return auth.GenerateToken(auth.TokenConfig{Secret: secret}, auth.Principal{
			Subject: "cuattroctl",
			Name:    "cuattroctl",
			Role:    auth.RoleAdmin,
		}, 5*time.Minute)
	}
}
