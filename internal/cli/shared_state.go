package cli

import (
	"log/slog"

	"github.com/alexanderramin/graphdeck/internal/config"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/editor"
	"github.com/alexanderramin/graphdeck/internal/graph"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App    *App
	Ctrl   *editor.Controller
	Canvas *canvas

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	cfg := app.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := app.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cv := newCanvas(editor.GridProjector{
		CellWidth:  float64(cfg.Editor.CellWidth),
		CellHeight: float64(cfg.Editor.CellHeight),
	})
	g := graph.New(graph.WithIDGenerator(graph.NewIDGenerator(cfg.Editor.IDPrefix, 0)))
	ctrl := editor.New(g, app.Catalog,
		editor.WithRenderer(cv),
		editor.WithProjector(cv),
		editor.WithLogger(logger),
		editor.WithMinFilterLen(cfg.Editor.MinFilterLen),
		editor.WithDefaultKind(domain.NodeKind(cfg.Editor.DefaultKind)),
	)

	return &SharedState{App: app, Ctrl: ctrl, Canvas: cv}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
