package testutil

import (
	"time"

	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/dragdrop"
)

// Payload options
type PayloadOption func(*domain.Payload)

func WithImage(img string) PayloadOption {
	return func(p *domain.Payload) {
		p.Image = img
	}
}

func WithDescription(d string) PayloadOption {
	return func(p *domain.Payload) {
		p.Description = d
	}
}

func WithNotes(n string) PayloadOption {
	return func(p *domain.Payload) {
		p.Notes = n
	}
}

func WithCategory(c string) PayloadOption {
	return func(p *domain.Payload) {
		p.Category = c
	}
}

func NewTestPayload(label string, opts ...PayloadOption) domain.Payload {
	p := domain.Payload{Label: label}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestTemplate returns a drag template as the side panel would write it.
func NewTestTemplate(kind domain.NodeKind, name string) dragdrop.Payload {
	return dragdrop.Payload{
		Kind:        kind,
		Name:        name,
		Image:       name + ".png",
		Description: "About " + name,
	}
}

// NewTestNameList returns a cached name list fetched at the given time.
func NewTestNameList(category string, fetchedAt time.Time, names ...string) *domain.NameList {
	return &domain.NameList{Category: category, Names: names, FetchedAt: fetchedAt}
}

// NewTestCatalogEntry returns a cached details record.
func NewTestCatalogEntry(category, name string, fetchedAt time.Time) *domain.CatalogEntry {
	return &domain.CatalogEntry{
		Category:    category,
		Name:        name,
		Image:       name + ".png",
		Description: "About " + name,
		FetchedAt:   fetchedAt,
	}
}
