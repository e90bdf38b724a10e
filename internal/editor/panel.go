package editor

import (
	"slices"

	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/dragdrop"
)

// Panel is the state of the side panel form. The controller owns it; the
// TUI reads copies through Controller.Panel.
type Panel struct {
	Category    string
	Search      string
	Suggestions []string
	Name        string
	Image       string
	Description string
	Notes       string
	Kind        domain.NodeKind
}

// template builds the drag payload for the current field values.
func (p Panel) template() dragdrop.Payload {
	return dragdrop.Payload{
		Kind:        p.Kind,
		Name:        p.Name,
		Image:       p.Image,
		Description: p.Description,
		Notes:       p.Notes,
		Category:    p.Category,
	}
}

// patch builds the edit written by ApplyEdit. Category is not part of it.
func (p Panel) patch() domain.PayloadPatch {
	return domain.PayloadPatch{
		Label:       domain.StrPtr(p.Name),
		Image:       domain.StrPtr(p.Image),
		Description: domain.StrPtr(p.Description),
		Notes:       domain.StrPtr(p.Notes),
		NodeType:    domain.KindPtr(p.Kind),
	}
}

// snapshot loads a node payload into the form, discarding unsaved edits.
func (p *Panel) snapshot(payload domain.Payload) {
	p.Category = payload.Category
	p.Search = payload.Label
	p.Name = payload.Label
	p.Image = payload.Image
	p.Description = payload.Description
	p.Notes = payload.Notes
}

func (p *Panel) reset() {
	p.Category = ""
	p.Search = ""
	p.Name = ""
	p.Image = ""
	p.Description = ""
	p.Notes = ""
}

func (p Panel) clone() Panel {
	p.Suggestions = slices.Clone(p.Suggestions)
	return p
}
