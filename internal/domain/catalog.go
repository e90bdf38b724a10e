package domain

import "time"

// CatalogEntry is a cached catalog detail record.
type CatalogEntry struct {
	Category    string
	Name        string
	Image       string
	Description string
	FetchedAt   time.Time
}

// NameList is a cached list of entry names for one category, in the order
// the catalog returned them.
type NameList struct {
	Category  string
	Names     []string
	FetchedAt time.Time
}
