package cli

import (
	"strings"
	"testing"

	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCanvas(nodes ...domain.Node) *canvas {
	c := newCanvas(editor.GridProjector{CellWidth: 10, CellHeight: 20})
	c.Render(nodes, nil)
	return c
}

func TestCanvas_ProjectAndLocate(t *testing.T) {
	c := testCanvas()
	pos := c.Project(domain.Point{X: 4, Y: 2})
	assert.Equal(t, domain.Point{X: 40, Y: 40}, pos)

	c.Render([]domain.Node{{ID: "dndnode_0", Kind: domain.KindInput, Position: pos}}, nil)
	n, ok := c.nodeAt(4, 2)
	require.True(t, ok)
	assert.Equal(t, "dndnode_0", n.ID)

	_, ok = c.nodeAt(3, 2)
	assert.False(t, ok)

	col, row, ok := c.cellOf("dndnode_0")
	require.True(t, ok)
	assert.Equal(t, [2]int{4, 2}, [2]int{col, row})
}

func TestCanvas_LaterNodeWinsSharedCell(t *testing.T) {
	c := testCanvas(
		domain.Node{ID: "dndnode_0", Position: domain.Point{X: 0, Y: 0}},
		domain.Node{ID: "dndnode_1", Position: domain.Point{X: 5, Y: 5}},
	)
	n, ok := c.nodeAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, "dndnode_1", n.ID)
}

func TestCanvas_DrawPlacesMarkersAndLabels(t *testing.T) {
	c := testCanvas(
		domain.Node{ID: "dndnode_0", Kind: domain.KindInput, Position: domain.Point{X: 10, Y: 0},
			Payload: domain.Payload{Label: "Moonveil"}},
		domain.Node{ID: "dndnode_1", Kind: domain.KindOutput, Position: domain.Point{X: 0, Y: 20},
			Payload: domain.Payload{Label: "Rivers of Blood"}},
	)

	out := stripANSI(c.draw(20, 3, 19, 2, domain.Unselected()))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "·▶Moonveil"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "◀Rivers …"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "+"), "cursor drawn on an empty cell")
}

func TestCanvas_DrawClipsOffscreenNodes(t *testing.T) {
	c := testCanvas(domain.Node{ID: "far", Position: domain.Point{X: 1000, Y: 1000}})
	out := stripANSI(c.draw(5, 2, -1, -1, domain.Unselected()))
	assert.Equal(t, "·····\n·····", out)
}

// stripANSI removes terminal escape sequences so tests compare visible text.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
