package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/graphdeck/internal/catalog"
	"github.com/alexanderramin/graphdeck/internal/cli"
	"github.com/alexanderramin/graphdeck/internal/config"
	"github.com/alexanderramin/graphdeck/internal/db"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags, err := cli.ParseGlobalFlags(os.Args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.Offline {
		cfg.Catalog.Offline = true
	}

	logger, closer, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	app := &cli.App{Config: cfg, Logger: logger}

	// Wire the catalog: the bundled sample offline, otherwise the remote
	// API behind the SQLite cache when it is enabled.
	if cfg.Catalog.Offline {
		app.Catalog = catalog.NewStatic(catalog.DemoEntries())
	} else {
		observer := catalog.NewLogObserver(logger)
		client := catalog.NewClient(cfg.ClientConfig(), observer)
		app.Catalog = client

		if cfg.Cache.Enabled {
			database, err := db.OpenDB(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			defer database.Close()

			app.Cache = catalog.NewCached(client, database,
				catalog.WithTTL(cfg.CacheTTL()),
				catalog.WithObserver(observer),
				catalog.WithLogger(logger),
			)
			app.Catalog = app.Cache
		}
	}

	// Detect interactive terminal so the bare command only opens the editor on a TTY.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Info("starting", "offline", cfg.Catalog.Offline, "cache", app.Cache != nil)

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
