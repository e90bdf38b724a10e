package cli

import (
	"github.com/alexanderramin/graphdeck/internal/editor"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// cmdOutputMsg carries a one-line notice shown in the status bar until
// the next key press.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// refreshViewMsg is broadcast to every view on the stack after the graph
// or the panel changed underneath them.
type refreshViewMsg struct{}

// namesLoadedMsg carries the answer to a names request issued by the panel.
type namesLoadedMsg struct {
	result editor.NamesResult
}

// detailsLoadedMsg carries the answer to a details request.
type detailsLoadedMsg struct {
	result editor.DetailsResult
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// output returns a tea.Cmd that shows s in the status bar.
func output(s string) tea.Cmd {
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

// fetchNames runs a names lookup off the event loop.
func fetchNames(ctrl *editor.Controller, req editor.NamesRequest, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return func() tea.Msg { return namesLoadedMsg{result: ctrl.FetchNames(req)} }
}

// fetchDetails runs a details lookup off the event loop.
func fetchDetails(ctrl *editor.Controller, req editor.DetailsRequest, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return func() tea.Msg { return detailsLoadedMsg{result: ctrl.FetchDetails(req)} }
}
