package cli

import (
	"fmt"

	"github.com/alexanderramin/graphdeck/internal/cli/formatter"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// graphdeckHuhTheme returns a custom huh theme using the Gruvbox palette.
func graphdeckHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// nodeOptionLabel is how a node appears in selection lists.
func nodeOptionLabel(n domain.Node) string {
	return fmt.Sprintf("%s  %s", n.ID, formatter.Truncate(n.Payload.Label, 30))
}

// wizardConnectTarget creates a huh form to pick the target of a new edge
// leaving source. Every node is offered, source included.
func wizardConnectTarget(nodes []domain.Node, source string, result *string) *huh.Form {
	if len(nodes) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(nodes))
	for _, n := range nodes {
		options = append(options, huh.NewOption(nodeOptionLabel(n), n.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Connect %s to?", source)).
				Options(options...).
				Value(result),
		),
	).WithTheme(graphdeckHuhTheme()).WithShowHelp(false)
}

// wizardConfirmDelete creates a yes/no form for removing n.
func wizardConfirmDelete(n domain.Node, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s (%s) and its edges?", n.ID, n.Payload.Label)).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(graphdeckHuhTheme()).WithShowHelp(false)
}
