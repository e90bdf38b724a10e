package editor

import (
	"context"
	"slices"
	"strings"

	"github.com/alexanderramin/graphdeck/internal/catalog"
)

// NamesRequest is an outstanding name-list lookup. Run it with FetchNames
// and hand the result to ApplyNames.
type NamesRequest struct {
	Token    uint64
	Category string

	ctx context.Context
}

type NamesResult struct {
	Token    uint64
	Category string
	Names    []string
	Err      error
}

// DetailsRequest is an outstanding detail lookup for one suggestion.
type DetailsRequest struct {
	Token    uint64
	Category string
	Name     string

	ctx context.Context
}

type DetailsResult struct {
	Token    uint64
	Category string
	Name     string
	Details  catalog.Details
	Err      error
}

// DedupeNames drops repeated names, keeping the first occurrence of each.
func DedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// FilterSuggestions keeps the names containing query, ignoring case.
func FilterSuggestions(names []string, query string) []string {
	q := strings.ToLower(query)
	return slices.DeleteFunc(slices.Clone(names), func(n string) bool {
		return !strings.Contains(strings.ToLower(n), q)
	})
}

// requestGroup tracks the latest request of one lookup group. A result is
// current only while its token is still the latest of its group.
type requestGroup struct {
	latest uint64
	cancel context.CancelFunc
}

// issue supersedes the previous request of the group with token and returns
// a context for the new one.
func (g *requestGroup) issue(token uint64) context.Context {
	g.invalidate()
	g.latest = token
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	return ctx
}

// invalidate cancels the outstanding request so its result is discarded.
func (g *requestGroup) invalidate() {
	g.settle()
	g.latest = 0
}

func (g *requestGroup) current(token uint64) bool {
	return token != 0 && token == g.latest
}

// settle releases the context of the finished request.
func (g *requestGroup) settle() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}
