package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimitrije/prompthub/internal/cli"
	"github.com/dimitrije/prompthub/internal/client"
	"github.com/dimitrije/prompthub/internal/config"
	"github.com/dimitrije/prompthub/internal/logger"
)

func main() {
	format := flag.String("o", cli.FormatJSON, "output format: json or yaml")
	baseURL := flag.String("base-url", "", "API base URL (overrides API_BASE_URL)")
	verbose := flag.Bool("v", false, "log every HTTP round trip to stdout")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, cli.Usage)
	}
	flag.Parse()

	if !cli.ValidFormat(*format) {
		fmt.Fprintf(os.Stderr, "unknown output format %q\n", *format)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.APIBaseURL = *baseURL
	}

	var opts []client.Option
	if *verbose {
		logCfg := cfg.Log
		logCfg.Level = "debug"
		log, err := logger.New(logCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		opts = append(opts, client.WithLogger(log))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(client.New(cfg.ClientConfig(), opts...), cli.Options{
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		In:         os.Stdin,
		Format:     *format,
		IsTerminal: cli.StdinIsTerminal,
	})

	if err := app.Run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprint(os.Stderr, cli.Usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}
