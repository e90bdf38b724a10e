package editor

import "github.com/alexanderramin/graphdeck/internal/domain"

// Renderer draws the graph. It is called after every graph mutation.
type Renderer interface {
	Render(nodes []domain.Node, edges []domain.Edge)
}

// Projector maps a screen point to canvas coordinates.
type Projector interface {
	Project(screen domain.Point) domain.Point
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(nodes []domain.Node, edges []domain.Edge)

func (f RendererFunc) Render(nodes []domain.Node, edges []domain.Edge) { f(nodes, edges) }

// ProjectorFunc adapts a function to Projector.
type ProjectorFunc func(screen domain.Point) domain.Point

func (f ProjectorFunc) Project(screen domain.Point) domain.Point { return f(screen) }

// Identity leaves points unchanged.
var Identity = ProjectorFunc(func(p domain.Point) domain.Point { return p })

// GridProjector maps terminal cells to canvas units: the origin is subtracted
// first, then each axis is scaled by its cell size.
type GridProjector struct {
	Origin     domain.Point
	CellWidth  float64
	CellHeight float64
}

func (g GridProjector) Project(screen domain.Point) domain.Point {
	return domain.Point{
		X: (screen.X - g.Origin.X) * g.CellWidth,
		Y: (screen.Y - g.Origin.Y) * g.CellHeight,
	}
}

// Cell is the inverse of Project, rounded down to a whole cell.
func (g GridProjector) Cell(canvas domain.Point) (col, row int) {
	if g.CellWidth == 0 || g.CellHeight == 0 {
		return 0, 0
	}
	return int(canvas.X / g.CellWidth), int(canvas.Y / g.CellHeight)
}

type nopRenderer struct{}

func (nopRenderer) Render([]domain.Node, []domain.Edge) {}
