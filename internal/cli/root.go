package cli

import (
	"log/slog"

	"github.com/alexanderramin/graphdeck/internal/catalog"
	"github.com/alexanderramin/graphdeck/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the collaborators shared by all CLI commands and the TUI.
type App struct {
	Config  *config.Config
	Catalog catalog.Catalog
	// Cache is the SQLite-backed catalog, nil when caching is disabled
	// or the editor runs offline.
	Cache  *catalog.Cached
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. The root command
	// only starts the TUI when it returns true.
	IsInteractive func() bool
}

// GlobalFlags are the persistent flags main needs before the command tree
// is built.
type GlobalFlags struct {
	ConfigPath string
	Offline    bool
}

// ParseGlobalFlags extracts --config and --offline from args, ignoring
// everything else.
func ParseGlobalFlags(args []string) (GlobalFlags, error) {
	var gf GlobalFlags
	fs := pflag.NewFlagSet("graphdeck", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	registerGlobalFlags(fs, &gf)
	if err := fs.Parse(args); err != nil && err != pflag.ErrHelp {
		return gf, err
	}
	return gf, nil
}

func registerGlobalFlags(fs *pflag.FlagSet, gf *GlobalFlags) {
	fs.StringVar(&gf.ConfigPath, "config", config.DefaultPath(), "path to the config file")
	fs.BoolVar(&gf.Offline, "offline", false, "use the built-in sample catalog instead of the network")
}

// NewRootCmd creates the top-level "graphdeck" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "graphdeck",
		Short: "Terminal node-graph editor backed by a game catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return cmd.Help()
			}
			return runEditor(cmd.Context(), app)
		},
	}

	// Parsed earlier by main; registered here so cobra accepts them and
	// lists them in help.
	var gf GlobalFlags
	registerGlobalFlags(root.PersistentFlags(), &gf)

	root.AddCommand(
		newEditCmd(app),
		newCatalogCmd(app),
	)

	return root
}
