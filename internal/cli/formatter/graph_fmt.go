package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/graphdeck/internal/catalog"
	"github.com/alexanderramin/graphdeck/internal/domain"
)

// FormatNodeTable lists nodes with their kind, label and edge count.
func FormatNodeTable(nodes []domain.Node, edges []domain.Edge) string {
	if len(nodes) == 0 {
		return Dim("No nodes yet. Press d to drop the panel template on the canvas.")
	}
	degree := make(map[string]int, len(nodes))
	for _, e := range edges {
		degree[e.Source]++
		if e.Target != e.Source {
			degree[e.Target]++
		}
	}
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			Dim(n.ID),
			KindBadge(n.Kind),
			Truncate(n.Payload.Label, 24),
			OrDash(n.Payload.Category),
			fmt.Sprintf("%g,%g", n.Position.X, n.Position.Y),
			fmt.Sprintf("%d", degree[n.ID]),
		})
	}
	return RenderTable([]string{"ID", "KIND", "LABEL", "CATEGORY", "POS", "EDGES"}, rows)
}

// FormatEdgeList renders one "source → target" line per edge, using labels
// where the node is known.
func FormatEdgeList(nodes []domain.Node, edges []domain.Edge) string {
	if len(edges) == 0 {
		return Dim("No edges.")
	}
	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		labels[n.ID] = n.Payload.Label
	}
	name := func(id string) string {
		if l, ok := labels[id]; ok && l != "" {
			return l + Dim(" ("+id+")")
		}
		return id
	}
	var b strings.Builder
	for i, e := range edges {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(name(e.Source) + StyleHeader.Render(" → ") + name(e.Target))
	}
	return b.String()
}

// FormatNodeDetails renders the payload of a single node.
func FormatNodeDetails(n domain.Node, width int) string {
	rows := [][2]string{
		{"Kind", KindBadge(n.Kind)},
		{"Type", OrDash(string(n.Payload.NodeType))},
		{"Category", OrDash(n.Payload.Category)},
		{"Image", OrDash(n.Payload.Image)},
		{"Description", OrDash(Wrap(n.Payload.Description, width))},
		{"Notes", OrDash(Wrap(n.Payload.Notes, width))},
	}
	var b strings.Builder
	b.WriteString(Bold(n.Payload.Label) + "  " + Dim(n.ID))
	for _, r := range rows {
		b.WriteString("\n" + StyleDim.Render(fmt.Sprintf("%-12s", r[0])) + r[1])
	}
	return b.String()
}

// FormatCategories lists every catalog category with its display title.
func FormatCategories() string {
	rows := make([][]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		rows = append(rows, []string{c, domain.CategoryTitles[c]})
	}
	return RenderTable([]string{"CATEGORY", "TITLE"}, rows)
}

// FormatNames renders a name list under a category header.
func FormatNames(category string, names []string) string {
	title := domain.CoalesceStr(domain.CategoryTitles[category], category)
	if len(names) == 0 {
		return Header(title) + "\n" + Dim("No matching names.")
	}
	var b strings.Builder
	b.WriteString(Header(title))
	for _, n := range names {
		b.WriteString("\n  " + n)
	}
	b.WriteString("\n" + Dim(fmt.Sprintf("%d names", len(names))))
	return b.String()
}

// FormatDetails renders a catalog record in a box.
func FormatDetails(category string, d catalog.Details) string {
	var b strings.Builder
	b.WriteString(Bold(d.Name))
	b.WriteString("\n" + Dim("category ") + category)
	b.WriteString("\n" + Dim("image    ") + OrDash(d.Image))
	if d.Description != "" {
		b.WriteString("\n\n" + Wrap(d.Description, 60))
	}
	return RenderBox(domain.CoalesceStr(domain.CategoryTitles[category], category), b.String())
}
