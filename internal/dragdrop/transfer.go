// Package dragdrop models the drag transfer channel between the side panel
// and the canvas: a named data slot, the allowed effect, and the JSON codec
// for the template payload carried across it.
package dragdrop

import "github.com/google/uuid"

// Format is the slot name the panel writes node templates to.
const Format = "application/reactflow"

// Effect describes what a drop does with the dragged data.
type Effect string

const (
	EffectNone Effect = "none"
	EffectMove Effect = "move"
	EffectCopy Effect = "copy"
)

// Transfer is the data carried by a single drag session. Only what is
// written into it at drag start is visible to the drop handler.
type Transfer struct {
	ID            string
	EffectAllowed Effect
	DropEffect    Effect

	data map[string]string
}

// NewTransfer starts a drag session with a fresh correlation id.
func NewTransfer() *Transfer {
	return &Transfer{
		ID:            uuid.New().String(),
		EffectAllowed: EffectNone,
		DropEffect:    EffectNone,
		data:          make(map[string]string),
	}
}

// SetData stores data under format, replacing any previous value.
func (t *Transfer) SetData(format, data string) {
	if t.data == nil {
		t.data = make(map[string]string)
	}
	t.data[format] = data
}

// GetData returns the data stored under format, or "" when absent.
func (t *Transfer) GetData(format string) string {
	if t == nil {
		return ""
	}
	return t.data[format]
}

// Types lists the formats currently carried.
func (t *Transfer) Types() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.data))
	for k := range t.data {
		out = append(out, k)
	}
	return out
}

// AcceptDrop is the drag-over step: it marks the drop as a move when the
// source allowed one.
func (t *Transfer) AcceptDrop() bool {
	if t == nil || t.EffectAllowed != EffectMove {
		return false
	}
	t.DropEffect = EffectMove
	return true
}
