package domain

// Point is a 2D coordinate. Screen points are terminal cells relative to the
// canvas origin; canvas points are in graph units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Payload is the editable metadata bundle attached to a node.
type Payload struct {
	Label       string   `json:"label"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Category    string   `json:"category,omitempty"`
	NodeType    NodeKind `json:"nodeType,omitempty"` // type tag written by the edit panel; Node.Kind is fixed
}

// PayloadPatch is a shallow partial update. Nil fields are left untouched.
type PayloadPatch struct {
	Label       *string
	Image       *string
	Description *string
	Notes       *string
	Category    *string
	NodeType    *NodeKind
}

// Apply returns a copy of p with every supplied patch field overwritten.
func (pp PayloadPatch) Apply(p Payload) Payload {
	if pp.Label != nil {
		p.Label = *pp.Label
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Notes != nil {
		p.Notes = *pp.Notes
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.NodeType != nil {
		p.NodeType = *pp.NodeType
	}
	return p
}

// Empty reports whether the patch supplies no fields.
func (pp PayloadPatch) Empty() bool {
	return pp.Label == nil && pp.Image == nil && pp.Description == nil &&
		pp.Notes == nil && pp.Category == nil && pp.NodeType == nil
}

type Node struct {
	ID       string
	Kind     NodeKind
	Position Point
	Payload  Payload
}

// Edge is a directed connection between two node ids.
type Edge struct {
	Source string
	Target string
}

// Touches reports whether the edge has id as either endpoint.
func (e Edge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}
