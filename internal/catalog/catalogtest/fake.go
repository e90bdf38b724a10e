// Package catalogtest provides a scripted Catalog for editor and TUI tests.
package catalogtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/graphdeck/internal/catalog"
)

// Fake is a scripted catalog.Catalog that counts calls and can be
// told to fail or to block until released.
type Fake struct {
	mu          sync.Mutex
	names       map[string][]string
	details     map[string]catalog.Details
	err         error
	gate        chan struct{}
	NamesCalls  int
	DetailCalls int
}

var _ catalog.Catalog = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		names:   make(map[string][]string),
		details: make(map[string]catalog.Details),
	}
}

// SetNames scripts the ListNames answer for category.
func (f *Fake) SetNames(category string, names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[category] = names
}

// SetDetails scripts the GetDetails answer for category and d.Name.
func (f *Fake) SetDetails(category string, d catalog.Details) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details[category+"/"+d.Name] = d
}

// FailWith makes every later call return err. Pass nil to recover.
func (f *Fake) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Block makes calls wait until Release is called or their context ends.
func (f *Fake) Block() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
}

func (f *Fake) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
}

func (f *Fake) Calls() (names, details int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.NamesCalls, f.DetailCalls
}

func (f *Fake) wait(ctx context.Context) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate == nil {
		return ctx.Err()
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fake) ListNames(ctx context.Context, category string) ([]string, error) {
	f.mu.Lock()
	f.NamesCalls++
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.names[category]...), nil
}

func (f *Fake) GetDetails(ctx context.Context, category, name string) (catalog.Details, error) {
	f.mu.Lock()
	f.DetailCalls++
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return catalog.Details{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return catalog.Details{}, f.err
	}
	d, ok := f.details[category+"/"+name]
	if !ok {
		return catalog.Details{}, fmt.Errorf("%s %q: %w", category, name, catalog.ErrNotFound)
	}
	return d, nil
}
