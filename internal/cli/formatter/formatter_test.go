package formatter

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/graphdeck/internal/catalog"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func sampleGraph() ([]domain.Node, []domain.Edge) {
	nodes := []domain.Node{
		{ID: "dndnode_0", Kind: domain.KindInput, Position: domain.Point{X: 10, Y: 20}, Payload: domain.Payload{Label: "Torch", Category: "item"}},
		{ID: "dndnode_1", Kind: domain.KindOutput, Payload: domain.Payload{Label: "Margit"}},
	}
	edges := []domain.Edge{
		{Source: "dndnode_0", Target: "dndnode_1"},
		{Source: "dndnode_1", Target: "dndnode_1"},
	}
	return nodes, edges
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Moonveil", 20, "Moonveil"},
		{"Rivers of Blood", 6, "River…"},
		{"ab", 1, "…"},
		{"ab", 0, ""},
		{"Ranní", 5, "Ranní"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n), tt.in)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "Lights\nthe way", Wrap("Lights the way", 8))
	assert.Equal(t, "", Wrap("   ", 8))
	assert.Equal(t, "unchanged", Wrap("unchanged", 0))
}

func TestFormatNodeTable(t *testing.T) {
	nodes, edges := sampleGraph()
	out := stripANSI(FormatNodeTable(nodes, edges))

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "▶ input")
	assert.Contains(t, out, "◀ output")
	assert.Contains(t, out, "10,20")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "1"), "torch has one edge")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[3]), "2"), "self-loop counts once")

	assert.Contains(t, stripANSI(FormatNodeTable(nil, nil)), "No nodes yet")
}

func TestFormatEdgeList(t *testing.T) {
	nodes, edges := sampleGraph()
	out := stripANSI(FormatEdgeList(nodes, edges))

	assert.Contains(t, out, "Torch (dndnode_0) → Margit (dndnode_1)")
	assert.Equal(t, "No edges.", stripANSI(FormatEdgeList(nodes, nil)))
	assert.Equal(t, "x → y", stripANSI(FormatEdgeList(nil, []domain.Edge{{Source: "x", Target: "y"}})))
}

func TestFormatNodeDetails(t *testing.T) {
	nodes, _ := sampleGraph()
	out := stripANSI(FormatNodeDetails(nodes[0], 40))

	assert.Contains(t, out, "Torch  dndnode_0")
	assert.Contains(t, out, "Category    item")
	assert.Contains(t, out, "Notes       --")
}

func TestFormatCategories(t *testing.T) {
	out := stripANSI(FormatCategories())
	for _, c := range domain.Categories {
		assert.Contains(t, out, c)
	}
	assert.Contains(t, out, "Ash Of War")
}

func TestFormatNames(t *testing.T) {
	out := stripANSI(FormatNames("weapon", []string{"Dagger", "Moonveil"}))
	assert.Contains(t, out, "WEAPON")
	assert.Contains(t, out, "  Moonveil")
	assert.Contains(t, out, "2 names")

	assert.Contains(t, stripANSI(FormatNames("boss", nil)), "No matching names.")
}

func TestFormatDetails(t *testing.T) {
	out := stripANSI(FormatDetails("talisman", catalog.Details{Name: "Erdtree's Favor", Description: "Raises HP"}))
	assert.Contains(t, out, "TALISMAN")
	assert.Contains(t, out, "Erdtree's Favor")
	assert.Contains(t, out, "image    --")
	assert.Contains(t, out, "Raises HP")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"long value", "x"}, {"s", "y"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
}

func TestSpinner_WritesAndClears(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "fetching names")
	time.Sleep(120 * time.Millisecond)
	stop()

	out := buf.String()
	assert.Contains(t, stripANSI(out), "fetching names")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}
