package cli

import (
	"log/slog"
	"testing"

	"github.com/alexanderramin/graphdeck/internal/catalog"
	"github.com/alexanderramin/graphdeck/internal/config"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/editor"
	"github.com/alexanderramin/graphdeck/internal/teatest"
)

// testApp wires an offline App backed by the sample catalog.
func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Enabled = false
	cfg.Catalog.Offline = true
	return &App{
		Config:  cfg,
		Catalog: catalog.NewStatic(catalog.DemoEntries()),
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// TestDriver wraps teatest.Driver with editor-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// controller) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init().
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// DropAt moves the cursor to (col, row) and drops the panel template there.
func (d *TestDriver) DropAt(col, row int) {
	d.T.Helper()
	d.MoveTo(col, row)
	d.PressKey('d')
}

// MoveTo moves the canvas cursor to (col, row) from wherever it is.
func (d *TestDriver) MoveTo(col, row int) {
	d.T.Helper()
	v := d.editor()
	for v.cursorCol < col {
		d.PressRight()
	}
	for v.cursorCol > col {
		d.PressLeft()
	}
	for v.cursorRow < row {
		d.PressDown()
	}
	for v.cursorRow > row {
		d.PressUp()
	}
}

// FocusField moves panel focus to f, entering the panel if needed.
func (d *TestDriver) FocusField(f panelField) {
	d.T.Helper()
	v := d.editor()
	if v.focus != focusPanel {
		d.PressTab()
	}
	for v.field != f {
		d.PressTab()
	}
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// editor returns the editor view at the bottom of the stack.
func (d *TestDriver) editor() *editorView {
	return d.appModel().viewStack[0].(*editorView)
}

// Ctrl returns the controller shared by all views.
func (d *TestDriver) Ctrl() *editor.Controller {
	return d.appModel().state.Ctrl
}

// Nodes returns the current graph nodes.
func (d *TestDriver) Nodes() []domain.Node {
	nodes, _ := d.Ctrl().Graph()
	return nodes
}

// Edges returns the current graph edges.
func (d *TestDriver) Edges() []domain.Edge {
	_, edges := d.Ctrl().Graph()
	return edges
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Notice returns the transient status bar output.
func (d *TestDriver) Notice() string {
	return d.appModel().lastOutput
}
