package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/graphdeck/internal/catalog"
	"github.com/alexanderramin/graphdeck/internal/cli/formatter"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/editor"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the game catalog used by the side panel",
	}

	cmd.AddCommand(
		newCatalogCategoriesCmd(),
		newCatalogNamesCmd(app),
		newCatalogShowCmd(app),
		newCatalogPurgeCmd(app),
	)

	return cmd
}

func newCatalogCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategories())
			return nil
		},
	}
}

func newCatalogNamesCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "names <category>",
		Short: "List the names in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			if err := requireCatalog(app); err != nil {
				return err
			}

			stop := startLookupSpinner(cmd, app, "Fetching "+category+" names...")
			names, err := app.Catalog.ListNames(cmdContext(cmd), category)
			stop()
			if err != nil {
				return fmt.Errorf("listing %s: %w", category, err)
			}

			names = editor.DedupeNames(names)
			if len([]rune(filter)) >= minFilterLen(app) {
				names = editor.FilterSuggestions(names, filter)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNames(category, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Case-insensitive substring filter (applied from the minimum filter length)")

	return cmd
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <category> <name>",
		Short: "Show the catalog record for one name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, name := args[0], args[1]
			if err := requireCatalog(app); err != nil {
				return err
			}

			stop := startLookupSpinner(cmd, app, "Fetching "+name+"...")
			d, err := app.Catalog.GetDetails(cmdContext(cmd), category, name)
			stop()
			if err != nil {
				return fmt.Errorf("looking up %s %q: %w", category, name, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDetails(category, d))
			return nil
		},
	}
}

func newCatalogPurgeCmd(app *App) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Drop cached catalog lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cache == nil {
				return errors.New("the catalog cache is disabled")
			}
			maxAge := olderThan
			if !cmd.Flags().Changed("older-than") {
				maxAge = catalog.DefaultCacheTTL
				if app.Config != nil {
					maxAge = app.Config.CacheTTL()
				}
			}

			n, err := app.Cache.Purge(cmdContext(cmd), maxAge)
			if err != nil {
				return fmt.Errorf("purging cache: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Purged %d cached lookups older than %s.\n",
				formatter.StyleGreen.Render("✔"), n, maxAge)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Maximum age to keep (default: the cache TTL)")

	return cmd
}

func requireCatalog(app *App) error {
	if app.Catalog == nil {
		return errors.New("no catalog configured")
	}
	return nil
}

func minFilterLen(app *App) int {
	if app.Config != nil && app.Config.Editor.MinFilterLen > 0 {
		return app.Config.Editor.MinFilterLen
	}
	return editor.DefaultMinFilterLen
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// startLookupSpinner shows a spinner on stderr while a network lookup runs.
// It stays silent when the output is not a terminal.
func startLookupSpinner(cmd *cobra.Command, app *App, msg string) func() {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), msg)
}

// categoryLabel is the display title of c, or a dash for no category.
func categoryLabel(c string) string {
	if c == "" {
		return "—"
	}
	return domain.CoalesceStr(domain.CategoryTitles[c], c)
}
