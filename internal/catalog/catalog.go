// Package catalog looks up item names and details used to pre-fill node
// templates. The editor only depends on the Catalog interface; the GraphQL
// client, the SQLite-backed cache and the static catalog all satisfy it.
package catalog

import (
	"context"
	"fmt"

	"github.com/alexanderramin/graphdeck/internal/domain"
)

// Details is the record returned for a single catalog entry.
type Details struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Catalog provides name lists and details per category.
type Catalog interface {
	// ListNames returns every entry name in category, possibly with duplicates.
	ListNames(ctx context.Context, category string) ([]string, error)

	// GetDetails returns the first entry in category called name.
	GetDetails(ctx context.Context, category, name string) (Details, error)
}

func checkCategory(category string) error {
	if !domain.IsCategory(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return nil
}
