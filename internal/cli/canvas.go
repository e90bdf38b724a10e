package cli

import (
	"strings"

	"github.com/alexanderramin/graphdeck/internal/cli/formatter"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/editor"
)

// labelWidth is how many label runes are drawn to the right of a node marker.
const labelWidth = 8

// canvas is the terminal rendering of the graph. The controller calls
// Render after every mutation and Project to place dropped nodes; one
// terminal cell maps to one grid cell.
type canvas struct {
	grid    editor.GridProjector
	nodes   []domain.Node
	edges   []domain.Edge
	renders int
}

func newCanvas(grid editor.GridProjector) *canvas {
	return &canvas{grid: grid}
}

func (c *canvas) Render(nodes []domain.Node, edges []domain.Edge) {
	c.nodes = nodes
	c.edges = edges
	c.renders++
}

func (c *canvas) Project(screen domain.Point) domain.Point {
	return c.grid.Project(screen)
}

// nodeAt returns the node drawn at cell (col, row). Later nodes are drawn
// on top, so the last match wins.
func (c *canvas) nodeAt(col, row int) (domain.Node, bool) {
	for i := len(c.nodes) - 1; i >= 0; i-- {
		nc, nr := c.grid.Cell(c.nodes[i].Position)
		if nc == col && nr == row {
			return c.nodes[i], true
		}
	}
	return domain.Node{}, false
}

// cellOf returns the cell node id is drawn at.
func (c *canvas) cellOf(id string) (col, row int, ok bool) {
	for _, n := range c.nodes {
		if n.ID == id {
			col, row = c.grid.Cell(n.Position)
			return col, row, true
		}
	}
	return 0, 0, false
}

// draw renders a cols×rows window of the canvas with the cursor and the
// selected node highlighted.
func (c *canvas) draw(cols, rows, cursorCol, cursorRow int, sel domain.Selection) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, cols)
		for col := range cells[r] {
			cells[r][col] = formatter.Dim("·")
		}
	}

	for _, n := range c.nodes {
		col, row := c.grid.Cell(n.Position)
		if row < 0 || row >= rows || col < 0 || col >= cols {
			continue
		}
		style := formatter.KindStyle(n.Kind)
		if sel.Is(n.ID) {
			style = formatter.StyleHeader
		}
		cells[row][col] = style.Render(kindMarker(n.Kind))
		for i, r := range []rune(formatter.Truncate(n.Payload.Label, labelWidth)) {
			if col+1+i >= cols {
				break
			}
			cells[row][col+1+i] = style.Render(string(r))
		}
	}

	if cursorRow >= 0 && cursorRow < rows && cursorCol >= 0 && cursorCol < cols {
		glyph := "+"
		if n, ok := c.nodeAt(cursorCol, cursorRow); ok {
			glyph = kindMarker(n.Kind)
		}
		cells[cursorRow][cursorCol] = formatter.StyleYellow.Reverse(true).Render(glyph)
	}

	lines := make([]string, rows)
	for r, row := range cells {
		lines[r] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func kindMarker(k domain.NodeKind) string {
	switch k {
	case domain.KindInput:
		return "▶"
	case domain.KindOutput:
		return "◀"
	default:
		return "●"
	}
}
