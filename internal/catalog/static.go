package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Static is an in-memory catalog. It backs offline mode and tests.
type Static struct {
	mu      sync.RWMutex
	entries map[string][]Details
}

var _ Catalog = (*Static)(nil)

// NewStatic creates a catalog holding entries keyed by category.
func NewStatic(entries map[string][]Details) *Static {
	s := &Static{entries: make(map[string][]Details, len(entries))}
	for cat, ds := range entries {
		s.entries[cat] = slices.Clone(ds)
	}
	return s
}

// Add appends an entry to category.
func (s *Static) Add(category string, d Details) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[category] = append(s.entries[category], d)
}

func (s *Static) ListNames(ctx context.Context, category string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries[category]))
	for _, d := range s.entries[category] {
		names = append(names, d.Name)
	}
	return names, nil
}

func (s *Static) GetDetails(ctx context.Context, category, name string) (Details, error) {
	if err := ctx.Err(); err != nil {
		return Details{}, err
	}
	if err := checkCategory(category); err != nil {
		return Details{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.entries[category] {
		if d.Name == name {
			return d, nil
		}
	}
	return Details{}, fmt.Errorf("%s %q: %w", category, name, ErrNotFound)
}

// DemoEntries is a small offline sample used when the network catalog is disabled.
func DemoEntries() map[string][]Details {
	return map[string][]Details{
		"weapon": {
			{Name: "Dagger", Description: "A standard double-edged dagger."},
			{Name: "Rivers of Blood", Description: "Katana wielded by Okina."},
			{Name: "Moonveil", Description: "Katana with a blade of glintstone."},
			{Name: "Uchigatana", Description: "Katana with a long single-edged curved blade."},
		},
		"talisman": {
			{Name: "Erdtree's Favor", Description: "Raises maximum HP, stamina and equip load."},
			{Name: "Radagon's Soreseal", Description: "Greatly raises vigor, endurance, strength and dexterity."},
		},
		"boss": {
			{Name: "Margit, The Fell Omen", Description: "Guardian of Stormveil Castle."},
			{Name: "Godrick the Grafted", Description: "Lord of Stormveil Castle."},
			{Name: "Rennala, Queen of the Full Moon", Description: "Headmistress of Raya Lucaria."},
		},
		"item": {
			{Name: "Flask of Crimson Tears", Description: "Restores HP."},
			{Name: "Flask of Cerulean Tears", Description: "Restores FP."},
			{Name: "Torch", Description: "Lights the way."},
		},
	}
}
