package domain

// Selection is either Unselected or Selected(nodeID). The zero value is
// Unselected, so an empty id can never be mistaken for a selection.
type Selection struct {
	nodeID string
	active bool
}

// Unselected returns the empty selection.
func Unselected() Selection { return Selection{} }

// Selected returns a selection bound to id.
func Selected(id string) Selection { return Selection{nodeID: id, active: true} }

// NodeID returns the selected id and whether a node is selected.
func (s Selection) NodeID() (string, bool) { return s.nodeID, s.active }

func (s Selection) IsSelected() bool { return s.active }

// Is reports whether id is the selected node.
func (s Selection) Is(id string) bool { return s.active && s.nodeID == id }

func (s Selection) String() string {
	if !s.active {
		return "unselected"
	}
	return "selected(" + s.nodeID + ")"
}
