package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the graph editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the editor needs an interactive terminal")
			}
			return runEditor(cmd.Context(), app)
		},
	}
}

// runEditor starts the TUI and blocks until the user quits.
func runEditor(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
