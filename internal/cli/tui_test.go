package cli

import (
	"errors"
	"testing"

	"github.com/alexanderramin/graphdeck/internal/catalog/catalogtest"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_StartsOnEditor(t *testing.T) {
	d := NewTestDriver(t, testApp(t))

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
	view := d.View()
	assert.Contains(t, view, "graphdeck")
	assert.Contains(t, view, "editor")
	assert.Contains(t, view, "No edges.")
	assert.Contains(t, view, "d: drop node")
}

func TestTUI_DropCreatesNodeAtCursor(t *testing.T) {
	d := NewTestDriver(t, testApp(t))

	d.DropAt(3, 2)

	nodes := d.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "dndnode_0", nodes[0].ID)
	assert.Equal(t, domain.KindDefault, nodes[0].Kind)
	assert.Equal(t, domain.Point{X: 30, Y: 40}, nodes[0].Position)
	assert.Equal(t, "default node", nodes[0].Payload.Label)
	assert.Contains(t, d.Notice(), "Created dndnode_0")
	assert.False(t, d.Ctrl().Selection().IsSelected(), "dropping does not select")
}

func TestTUI_CursorStaysOnCanvas(t *testing.T) {
	d := NewTestDriver(t, testApp(t))

	d.PressLeft()
	d.PressUp()
	d.PressKey('d')

	require.Len(t, d.Nodes(), 1)
	assert.Equal(t, domain.Point{}, d.Nodes()[0].Position)
}

func TestTUI_ClickSelectsAndClears(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(1, 1)

	d.PressEnter()
	assert.True(t, d.Ctrl().Selection().Is("dndnode_0"))
	assert.Equal(t, "default node", d.Ctrl().Panel().Name)
	assert.Contains(t, d.View(), "[dndnode_0", "header shows the selection")

	d.PressRight()
	d.PressSpace()
	assert.False(t, d.Ctrl().Selection().IsSelected())
	assert.Empty(t, d.Ctrl().Panel().Name)
}

func TestTUI_NextNodeCyclesSelection(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)
	d.DropAt(4, 3)

	d.PressKey('n')
	assert.True(t, d.Ctrl().Selection().Is("dndnode_0"))
	d.PressKey('n')
	assert.True(t, d.Ctrl().Selection().Is("dndnode_1"))
	assert.Equal(t, 4, d.editor().cursorCol)
	assert.Equal(t, 3, d.editor().cursorRow)
	d.PressKey('n')
	assert.True(t, d.Ctrl().Selection().Is("dndnode_0"))
}

func TestTUI_EditSelectedNode(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)
	d.PressEnter()

	d.FocusField(fieldName)
	d.Type("!")
	d.FocusField(fieldNotes)
	d.Type("pick up later")
	d.FocusField(fieldUpdate)
	d.PressEnter()

	n, ok := d.Ctrl().Node("dndnode_0")
	require.True(t, ok)
	assert.Equal(t, "default node!", n.Payload.Label)
	assert.Equal(t, "pick up later", n.Payload.Notes)
	assert.Contains(t, d.Notice(), "Updated dndnode_0")
}

func TestTUI_UpdateWithoutSelectionHints(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)

	d.FocusField(fieldName)
	d.Type("Ghost")
	d.FocusField(fieldUpdate)
	d.PressEnter()

	assert.Contains(t, d.Notice(), "Select a node first.")
	assert.Equal(t, "default node", d.Nodes()[0].Payload.Label)
}

func TestTUI_PanelCapturesKeys(t *testing.T) {
	d := NewTestDriver(t, testApp(t))

	d.FocusField(fieldSearch)
	d.PressKey('q')
	assert.False(t, d.Quitting, "q is typed into the search field")

	d.PressEsc()
	assert.Equal(t, focusCanvas, d.editor().focus)
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestTUI_ShiftTabWrapsToUpdateButton(t *testing.T) {
	d := NewTestDriver(t, testApp(t))

	d.PressTab()
	assert.Equal(t, fieldCategory, d.editor().field)
	d.PressShiftTab()
	assert.Equal(t, fieldUpdate, d.editor().field)
}

func TestTUI_KindCycleChangesDroppedNode(t *testing.T) {
	d := NewTestDriver(t, testApp(t))

	d.FocusField(fieldKind)
	d.PressRight()
	assert.Equal(t, domain.KindOutput, d.Ctrl().Panel().Kind)
	d.PressEsc()
	d.PressKey('d')

	require.Len(t, d.Nodes(), 1)
	assert.Equal(t, domain.KindOutput, d.Nodes()[0].Kind)
	assert.Equal(t, "output node", d.Nodes()[0].Payload.Label)
}

func TestTUI_CategoryLoadsSuggestions(t *testing.T) {
	d := NewTestDriver(t, testApp(t))

	d.FocusField(fieldCategory)
	d.PressLeft() // wraps from "no category" to the last category

	p := d.Ctrl().Panel()
	assert.Equal(t, "weapon", p.Category)
	assert.Equal(t, []string{"Dagger", "Rivers of Blood", "Moonveil", "Uchigatana"}, p.Suggestions)
	assert.Contains(t, d.View(), "Uchigatana")
}

func TestTUI_SearchFiltersAndPicksSuggestion(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.FocusField(fieldCategory)
	d.PressLeft()

	d.FocusField(fieldNotes)
	d.Type("mine")
	d.FocusField(fieldSearch)
	d.Type("moo")
	assert.Equal(t, []string{"Moonveil"}, d.Ctrl().Panel().Suggestions)

	d.PressDown()
	d.PressEnter()

	p := d.Ctrl().Panel()
	assert.Equal(t, "Moonveil", p.Search)
	assert.Equal(t, "Moonveil", p.Name)
	assert.Equal(t, "Katana with a blade of glintstone.", p.Description)
	assert.Equal(t, "mine", p.Notes, "details never overwrite notes")
	assert.Equal(t, "Moonveil", d.editor().inputs[fieldName].Value())
}

func TestTUI_ShortSearchRefetchesFullList(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.FocusField(fieldCategory)
	d.PressLeft()
	d.FocusField(fieldSearch)

	d.Type("moo")
	require.Len(t, d.Ctrl().Panel().Suggestions, 1)

	d.PressBackspace()
	assert.Len(t, d.Ctrl().Panel().Suggestions, 4)
}

func TestTUI_DroppedTemplateCarriesPanelFields(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.FocusField(fieldCategory)
	d.PressLeft()
	d.FocusField(fieldSearch)
	d.Type("dag")
	d.PressDown()
	d.PressEnter()
	d.PressEsc()

	d.DropAt(2, 2)

	require.Len(t, d.Nodes(), 1)
	p := d.Nodes()[0].Payload
	assert.Equal(t, "Dagger", p.Label)
	assert.Equal(t, "weapon", p.Category)
	assert.Equal(t, "A standard double-edged dagger.", p.Description)
}

func TestTUI_ConnectWizard(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)
	d.DropAt(3, 0)
	d.PressKey('n')

	d.PressKey('c')
	require.Equal(t, ViewForm, d.ActiveViewID())
	d.PressDown()
	d.PressEnter()

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	require.Len(t, d.Edges(), 1)
	assert.Equal(t, "dndnode_0", d.Edges()[0].Source)
	assert.Equal(t, "dndnode_1", d.Edges()[0].Target)
	assert.Contains(t, d.Notice(), "Connected dndnode_0 → dndnode_1")
}

func TestTUI_ConnectNeedsSelection(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)

	d.PressKey('c')

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	assert.Contains(t, d.Notice(), "Select a node to connect from.")
}

func TestTUI_DeleteConfirmed(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)
	d.DropAt(2, 0)
	d.PressKey('n')
	d.PressKey('c')
	d.PressDown()
	d.PressEnter()
	require.Len(t, d.Edges(), 1)

	d.PressKey('x')
	require.Equal(t, ViewForm, d.ActiveViewID())
	d.PressKey('y')

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	require.Len(t, d.Nodes(), 1)
	assert.Equal(t, "dndnode_1", d.Nodes()[0].ID)
	assert.Empty(t, d.Edges(), "edges of the removed node go with it")
	assert.False(t, d.Ctrl().Selection().IsSelected())
}

func TestTUI_DeleteCancelled(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)
	d.PressKey('n')

	d.PressKey('x')
	d.PressEsc()

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	assert.Len(t, d.Nodes(), 1)
	assert.Contains(t, d.Notice(), "Cancelled.")
}

func TestTUI_LowerPaneCycles(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)

	d.PressKey('v')
	assert.Contains(t, d.View(), "LABEL")

	d.PressKey('v')
	assert.Contains(t, d.View(), "No node selected.")

	d.PressKey('n')
	assert.Contains(t, d.View(), "Description")
}

func TestTUI_LookupFailureStaysQuiet(t *testing.T) {
	fake := catalogtest.New()
	fake.FailWith(errors.New("network down"))
	app := testApp(t)
	app.Catalog = fake
	d := NewTestDriver(t, app)

	d.FocusField(fieldCategory)
	d.PressLeft()

	p := d.Ctrl().Panel()
	assert.Equal(t, "weapon", p.Category)
	assert.Empty(t, p.Suggestions)
	assert.Empty(t, d.Notice())
	assert.NotContains(t, d.View(), "network down")
}

func TestTUI_SelectedPaneShowsWholeNode(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.DropAt(0, 0)
	d.PressKey('n')
	d.PressKey('v')
	d.PressKey('v')

	view := d.View()
	for _, label := range []string{"Kind", "Type", "Category", "Image", "Description", "Notes"} {
		assert.Contains(t, view, label)
	}
}
