package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/graphdeck/internal/cli/formatter"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/dragdrop"
	"github.com/alexanderramin/graphdeck/internal/editor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	panelWidth     = 42
	lowerHeight    = 9
	maxSuggestions = 6
)

type editorFocus int

const (
	focusCanvas editorFocus = iota
	focusPanel
)

// panelField is a focusable row of the side panel, in tab order.
type panelField int

const (
	fieldCategory panelField = iota
	fieldKind
	fieldSearch
	fieldName
	fieldImage
	fieldDescription
	fieldNotes
	fieldUpdate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldCategory:    "Category",
	fieldKind:        "Type",
	fieldSearch:      "Search",
	fieldName:        "Name",
	fieldImage:       "Image",
	fieldDescription: "About",
	fieldNotes:       "Notes",
}

func (f panelField) isText() bool {
	return f >= fieldSearch && f <= fieldNotes
}

// lowerMode selects what the pane under the canvas shows.
type lowerMode int

const (
	lowerEdges lowerMode = iota
	lowerNodes
	lowerSelected
	lowerModeCount
)

var lowerTitles = [lowerModeCount]string{"Edges", "Nodes", "Selected"}

// editorView is the home view: the canvas on the left, the side panel on
// the right and a scrollable pane below the canvas.
type editorView struct {
	state *SharedState
	focus editorFocus
	field panelField

	cursorCol int
	cursorRow int

	inputs    [fieldCount]textinput.Model
	highlight int // index into the suggestions, -1 when none is highlighted

	lower     viewport.Model
	lowerMode lowerMode
}

func newEditorView(state *SharedState) *editorView {
	v := &editorView{
		state:     state,
		highlight: -1,
		lower:     viewport.New(0, 0),
	}
	v.lower.KeyMap = lowerKeyMap()
	for f := fieldSearch; f <= fieldNotes; f++ {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = panelWidth - 14
		v.inputs[f] = ti
	}
	v.inputs[fieldSearch].Placeholder = "type to search"
	state.Ctrl.Refresh()
	v.syncInputs()
	v.syncLower()
	return v
}

func (v *editorView) ID() ViewID    { return ViewEditor }
func (v *editorView) Title() string { return "editor" }

// CapturesInput is true while the side panel has focus so that letters
// reach its text fields.
func (v *editorView) CapturesInput() bool { return v.focus == focusPanel }

func (v *editorView) ShortHelp() []key.Binding {
	if v.focus == focusPanel {
		return []key.Binding{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
			key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "cycle")),
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "suggestion")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick/update")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "canvas")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drop node")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next node")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "pane")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "panel")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (v *editorView) Init() tea.Cmd {
	return nil
}

func (v *editorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.syncInputs()
		if v.highlight >= len(v.state.Ctrl.Panel().Suggestions) {
			v.highlight = -1
		}

	case tea.WindowSizeMsg:
		v.clampCursor()

	case tea.KeyMsg:
		if v.focus == focusPanel {
			cmd = v.updatePanel(msg)
		} else {
			cmd = v.updateCanvas(msg)
		}

	default:
		if v.focus == focusPanel && v.field.isText() {
			v.inputs[v.field], cmd = v.inputs[v.field].Update(msg)
		}
	}
	v.syncLower()
	return v, cmd
}

// ── canvas ───────────────────────────────────────────────────────────────────

func (v *editorView) updateCanvas(msg tea.KeyMsg) tea.Cmd {
	ctrl := v.state.Ctrl
	switch msg.String() {
	case "left", "h":
		v.cursorCol--
	case "right", "l":
		v.cursorCol++
	case "up", "k":
		v.cursorRow--
	case "down", "j":
		v.cursorRow++

	case "enter", " ", "space":
		n, ok := v.state.Canvas.nodeAt(v.cursorCol, v.cursorRow)
		if !ok {
			ctrl.ClearSelection()
			v.resetSuggestionCursor()
			v.syncInputs()
			return nil
		}
		return v.selectNode(n.ID)

	case "d":
		return v.dropAtCursor()

	case "n":
		return v.cycleSelection()

	case "c":
		return v.startConnect()

	case "x":
		return v.startDelete()

	case "v":
		v.lowerMode = (v.lowerMode + 1) % lowerModeCount
		v.lower.GotoTop()

	case "pgup", "pgdown":
		var cmd tea.Cmd
		v.lower, cmd = v.lower.Update(msg)
		return cmd

	case "tab":
		v.focusPanel(fieldCategory)
		return nil
	}
	v.clampCursor()
	return nil
}

func (v *editorView) selectNode(id string) tea.Cmd {
	req, ok := v.state.Ctrl.Select(id)
	v.resetSuggestionCursor()
	v.syncInputs()
	return fetchNames(v.state.Ctrl, req, ok)
}

// dropAtCursor performs a complete drag gesture: the panel template is
// written into a fresh transfer and dropped on the cursor cell.
func (v *editorView) dropAtCursor() tea.Cmd {
	ctrl := v.state.Ctrl
	t := dragdrop.NewTransfer()
	if err := ctrl.DragStart(t); err != nil {
		return output(formatter.StyleRed.Render("Drag failed: " + err.Error()))
	}
	n, ok := ctrl.Drop(t, domain.Point{X: float64(v.cursorCol), Y: float64(v.cursorRow)})
	if !ok {
		return output(formatter.Dim("Nothing dropped."))
	}
	return output(fmt.Sprintf("%s Created %s %s", formatter.StyleGreen.Render("✔"), n.ID, formatter.Dim(n.Payload.Label)))
}

// cycleSelection selects the node after the current one in creation order
// and moves the cursor onto it.
func (v *editorView) cycleSelection() tea.Cmd {
	nodes, _ := v.state.Ctrl.Graph()
	if len(nodes) == 0 {
		return output(formatter.Dim("No nodes yet."))
	}
	next := 0
	if id, ok := v.state.Ctrl.Selection().NodeID(); ok {
		for i, n := range nodes {
			if n.ID == id {
				next = (i + 1) % len(nodes)
				break
			}
		}
	}
	target := nodes[next]
	if col, row, ok := v.state.Canvas.cellOf(target.ID); ok {
		v.cursorCol, v.cursorRow = col, row
		v.clampCursor()
	}
	return v.selectNode(target.ID)
}

func (v *editorView) startConnect() tea.Cmd {
	ctrl := v.state.Ctrl
	source, ok := ctrl.Selection().NodeID()
	if !ok {
		return output(formatter.Dim("Select a node to connect from."))
	}
	nodes, _ := ctrl.Graph()
	var target string
	form := wizardConnectTarget(nodes, source, &target)
	return startWizardCmd(v.state, "connect", form, func() tea.Cmd {
		e, err := ctrl.Connect(source, target)
		if err != nil {
			return output(formatter.StyleRed.Render("Connect failed: " + err.Error()))
		}
		return output(fmt.Sprintf("%s Connected %s → %s", formatter.StyleGreen.Render("✔"), e.Source, e.Target))
	})
}

func (v *editorView) startDelete() tea.Cmd {
	ctrl := v.state.Ctrl
	n, ok := ctrl.SelectedNode()
	if !ok {
		return output(formatter.Dim("Select a node to delete."))
	}
	var confirmed bool
	form := wizardConfirmDelete(n, &confirmed)
	return startWizardCmd(v.state, "delete", form, func() tea.Cmd {
		if !confirmed {
			return output(formatter.Dim("Kept " + n.ID + "."))
		}
		if err := ctrl.RemoveNode(n.ID); err != nil {
			return output(formatter.StyleRed.Render("Delete failed: " + err.Error()))
		}
		return output(fmt.Sprintf("%s Deleted %s", formatter.StyleGreen.Render("✔"), n.ID))
	})
}

// canvasSize is the number of cells the canvas box can show.
func (v *editorView) canvasSize() (cols, rows int) {
	cols = v.state.Width - panelWidth - 4
	rows = v.state.ContentHeight() - lowerHeight - 4
	return max(cols, 1), max(rows, 1)
}

func (v *editorView) clampCursor() {
	cols, rows := v.canvasSize()
	v.cursorCol = min(max(v.cursorCol, 0), cols-1)
	v.cursorRow = min(max(v.cursorRow, 0), rows-1)
}

// ── side panel ───────────────────────────────────────────────────────────────

func (v *editorView) focusPanel(f panelField) {
	v.focus = focusPanel
	v.setField(f)
}

func (v *editorView) blurInputs() {
	for f := fieldSearch; f <= fieldNotes; f++ {
		v.inputs[f].Blur()
	}
}

func (v *editorView) setField(f panelField) {
	v.blurInputs()
	v.field = f
	if f.isText() {
		v.inputs[f].Focus()
	}
}

func (v *editorView) updatePanel(msg tea.KeyMsg) tea.Cmd {
	ctrl := v.state.Ctrl
	switch msg.String() {
	case "esc":
		v.blurInputs()
		v.focus = focusCanvas
		return nil
	case "tab":
		v.setField((v.field + 1) % fieldCount)
		return nil
	case "shift+tab":
		v.setField((v.field + fieldCount - 1) % fieldCount)
		return nil
	}

	switch v.field {
	case fieldCategory:
		if step := cycleStep(msg); step != 0 {
			req, ok := ctrl.ChangeCategory(cycleCategory(ctrl.Panel().Category, step))
			v.resetSuggestionCursor()
			v.syncInputs()
			return fetchNames(ctrl, req, ok)
		}
		if msg.Type == tea.KeyEnter {
			v.setField(v.field + 1)
		}
		return nil

	case fieldKind:
		if step := cycleStep(msg); step != 0 {
			ctrl.SetKind(cycleKind(ctrl.Panel().Kind, step))
		}
		if msg.Type == tea.KeyEnter {
			v.setField(v.field + 1)
		}
		return nil

	case fieldSearch:
		return v.updateSearch(msg)

	case fieldUpdate:
		if msg.Type == tea.KeyEnter || msg.String() == " " || msg.String() == "space" {
			return v.applyEdit()
		}
		return nil
	}

	if msg.Type == tea.KeyEnter {
		v.setField(v.field + 1)
		return nil
	}
	return v.updateTextField(msg)
}

func (v *editorView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	ctrl := v.state.Ctrl
	suggestions := ctrl.Panel().Suggestions
	switch msg.Type {
	case tea.KeyUp:
		if v.highlight > 0 {
			v.highlight--
		} else {
			v.highlight = -1
		}
		return nil
	case tea.KeyDown:
		if v.highlight < len(suggestions)-1 {
			v.highlight++
		}
		return nil
	case tea.KeyEnter:
		if v.highlight < 0 || v.highlight >= len(suggestions) {
			v.setField(fieldName)
			return nil
		}
		req, ok := ctrl.SelectSuggestion(suggestions[v.highlight])
		v.resetSuggestionCursor()
		v.syncInputs()
		return fetchDetails(ctrl, req, ok)
	}

	before := v.inputs[fieldSearch].Value()
	var cmd tea.Cmd
	v.inputs[fieldSearch], cmd = v.inputs[fieldSearch].Update(msg)
	after := v.inputs[fieldSearch].Value()
	if after == before {
		return cmd
	}
	req, ok := ctrl.TypeSearch(after)
	v.resetSuggestionCursor()
	return tea.Batch(cmd, fetchNames(ctrl, req, ok))
}

func (v *editorView) updateTextField(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	v.inputs[v.field], cmd = v.inputs[v.field].Update(msg)
	value := v.inputs[v.field].Value()

	ctrl := v.state.Ctrl
	switch v.field {
	case fieldName:
		ctrl.SetName(value)
	case fieldImage:
		ctrl.SetImage(value)
	case fieldDescription:
		ctrl.SetDescription(value)
	case fieldNotes:
		ctrl.SetNotes(value)
	}
	return cmd
}

func (v *editorView) applyEdit() tea.Cmd {
	n, err := v.state.Ctrl.ApplyEdit()
	if errors.Is(err, editor.ErrNoSelection) {
		return output(formatter.Dim("Select a node first."))
	}
	if err != nil {
		return output(formatter.StyleRed.Render("Update failed: " + err.Error()))
	}
	return output(fmt.Sprintf("%s Updated %s", formatter.StyleGreen.Render("✔"), n.ID))
}

func (v *editorView) resetSuggestionCursor() {
	v.highlight = -1
}

// syncInputs copies the controller's panel values into the text inputs.
func (v *editorView) syncInputs() {
	p := v.state.Ctrl.Panel()
	values := map[panelField]string{
		fieldSearch:      p.Search,
		fieldName:        p.Name,
		fieldImage:       p.Image,
		fieldDescription: p.Description,
		fieldNotes:       p.Notes,
	}
	for f, s := range values {
		if v.inputs[f].Value() != s {
			v.inputs[f].SetValue(s)
		}
	}
}

func (v *editorView) syncLower() {
	cols, _ := v.canvasSize()
	v.lower.Width = cols + 2
	v.lower.Height = lowerHeight - 1

	nodes, edges := v.state.Ctrl.Graph()
	switch v.lowerMode {
	case lowerNodes:
		v.lower.SetContent(formatter.FormatNodeTable(nodes, edges))
	case lowerSelected:
		if n, ok := v.state.Ctrl.SelectedNode(); ok {
			v.lower.SetContent(formatter.FormatNodeDetails(n, cols-14))
		} else {
			v.lower.SetContent(formatter.Dim("No node selected."))
		}
	default:
		v.lower.SetContent(formatter.FormatEdgeList(nodes, edges))
	}
}

// lowerKeyMap leaves arrows and letters to the canvas cursor.
func lowerKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
}

func cycleStep(msg tea.KeyMsg) int {
	switch msg.Type {
	case tea.KeyLeft:
		return -1
	case tea.KeyRight:
		return 1
	}
	return 0
}

// cycleCategory steps through "no category" followed by every catalog category.
func cycleCategory(current string, step int) string {
	options := append([]string{""}, domain.Categories...)
	i := 0
	for j, c := range options {
		if c == current {
			i = j
			break
		}
	}
	n := len(options)
	return options[((i+step)%n+n)%n]
}

func cycleKind(current domain.NodeKind, step int) domain.NodeKind {
	i := 0
	for j, k := range domain.NodeKinds {
		if k == current {
			i = j
			break
		}
	}
	n := len(domain.NodeKinds)
	return domain.NodeKinds[((i+step)%n+n)%n]
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *editorView) View() string {
	cols, rows := v.canvasSize()
	sel := v.state.Ctrl.Selection()

	canvasTitle := formatter.Dim(fmt.Sprintf("canvas  %d,%d", v.cursorCol, v.cursorRow))
	canvasBox := boxStyle(v.focus == focusCanvas).
		Width(cols).
		Render(canvasTitle + "\n" + v.state.Canvas.draw(cols, rows, v.cursorCol, v.cursorRow, sel))

	lowerTitle := formatter.Dim(lowerTitles[v.lowerMode])
	left := lipgloss.JoinVertical(lipgloss.Left, canvasBox, lowerTitle, v.lower.View())

	panelBox := boxStyle(v.focus == focusPanel).
		Width(panelWidth - 2).
		Render(v.renderPanel())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, panelBox)
}

func boxStyle(focused bool) lipgloss.Style {
	border := formatter.ColorDim
	if focused {
		border = formatter.ColorHeader
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}

func (v *editorView) renderPanel() string {
	p := v.state.Ctrl.Panel()
	var b strings.Builder

	target := formatter.Dim("none")
	if id, ok := v.state.Ctrl.Selection().NodeID(); ok {
		target = formatter.StyleGreen.Render(id)
	}
	b.WriteString(formatter.StyleHeader.Render("NODE") + "  " + target + "\n\n")

	b.WriteString(v.row(fieldCategory, "‹ "+categoryLabel(p.Category)+" ›") + "\n")
	b.WriteString(v.row(fieldKind, "‹ "+formatter.KindBadge(p.Kind)+" ›") + "\n")
	b.WriteString(v.row(fieldSearch, v.inputs[fieldSearch].View()) + "\n")
	b.WriteString(v.renderSuggestions(p.Suggestions))
	for _, f := range []panelField{fieldName, fieldImage, fieldDescription, fieldNotes} {
		b.WriteString(v.row(f, v.inputs[f].View()) + "\n")
	}

	button := formatter.Dim("[ Update ]")
	if v.focus == focusPanel && v.field == fieldUpdate {
		button = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1).Render("Update")
	}
	b.WriteString("\n" + button)
	return b.String()
}

func (v *editorView) row(f panelField, value string) string {
	marker := "  "
	label := formatter.StyleDim.Render(fmt.Sprintf("%-9s", fieldLabels[f]))
	if v.focus == focusPanel && v.field == f {
		marker = formatter.StyleHeader.Render("› ")
		label = formatter.StyleFg.Render(fmt.Sprintf("%-9s", fieldLabels[f]))
	}
	return marker + label + value
}

func (v *editorView) renderSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	start := 0
	if v.highlight >= maxSuggestions {
		start = v.highlight - maxSuggestions + 1
	}
	end := min(start+maxSuggestions, len(suggestions))

	var b strings.Builder
	for i := start; i < end; i++ {
		name := formatter.Truncate(suggestions[i], panelWidth-16)
		if i == v.highlight {
			b.WriteString("           " + formatter.StyleGreen.Render("▸ "+name) + "\n")
		} else {
			b.WriteString("             " + formatter.Dim(name) + "\n")
		}
	}
	if rest := len(suggestions) - end; rest > 0 {
		b.WriteString("             " + formatter.Dim(fmt.Sprintf("+%d more", rest)) + "\n")
	}
	return b.String()
}
