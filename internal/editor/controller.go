// Package editor turns user gestures into graph mutations. The Controller
// owns the selection and the side panel form, and is the only writer to the
// graph state.
package editor

import (
	"log/slog"

	"github.com/alexanderramin/graphdeck/internal/catalog"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/dragdrop"
	"github.com/alexanderramin/graphdeck/internal/graph"
)

// DefaultMinFilterLen is the search length from which suggestions are
// filtered locally instead of refetched.
const DefaultMinFilterLen = 3

// Controller is not safe for concurrent use. Call it from one event loop;
// only FetchNames and FetchDetails may run elsewhere.
type Controller struct {
	graph     *graph.State
	catalog   catalog.Catalog
	renderer  Renderer
	projector Projector
	logger    *slog.Logger

	selection    domain.Selection
	panel        Panel
	minFilterLen int

	// fetched is the last complete name list, the base for local filtering.
	fetched         []string
	fetchedCategory string

	seq     uint64
	names   requestGroup
	details requestGroup
}

// Option configures a Controller.
type Option func(*Controller)

func WithRenderer(r Renderer) Option {
	return func(c *Controller) {
		if r != nil {
			c.renderer = r
		}
	}
}

func WithProjector(p Projector) Option {
	return func(c *Controller) {
		if p != nil {
			c.projector = p
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMinFilterLen(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.minFilterLen = n
		}
	}
}

// WithDefaultKind sets the initial value of the panel's node type selector.
func WithDefaultKind(k domain.NodeKind) Option {
	return func(c *Controller) {
		if domain.ValidNodeKinds[string(k)] {
			c.panel.Kind = k
		}
	}
}

// New creates a controller over g. cat may be nil, in which case lookups
// are never issued.
func New(g *graph.State, cat catalog.Catalog, opts ...Option) *Controller {
	c := &Controller{
		graph:        g,
		catalog:      cat,
		renderer:     nopRenderer{},
		projector:    Identity,
		logger:       slog.New(slog.DiscardHandler),
		minFilterLen: DefaultMinFilterLen,
		panel:        Panel{Kind: domain.KindDefault},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Panel returns a copy of the side panel state.
func (c *Controller) Panel() Panel { return c.panel.clone() }

func (c *Controller) Selection() domain.Selection { return c.selection }

// Graph returns copies of the current nodes and edges.
func (c *Controller) Graph() ([]domain.Node, []domain.Edge) { return c.graph.ReadAll() }

// Node returns a copy of node id.
func (c *Controller) Node(id string) (domain.Node, bool) { return c.graph.Node(id) }

// SelectedNode returns the selected node, if any.
func (c *Controller) SelectedNode() (domain.Node, bool) {
	id, ok := c.selection.NodeID()
	if !ok {
		return domain.Node{}, false
	}
	return c.graph.Node(id)
}

// Refresh re-renders the graph without changing it.
func (c *Controller) Refresh() { c.render() }

func (c *Controller) render() {
	nodes, edges := c.graph.ReadAll()
	c.renderer.Render(nodes, edges)
}

// Select binds the panel to node id and loads its payload, discarding any
// unsaved panel edits. Clicking an unknown id changes nothing. When the
// node's category differs from the one the suggestions belong to, a names
// request for it is returned.
func (c *Controller) Select(id string) (NamesRequest, bool) {
	n, ok := c.graph.Node(id)
	if !ok {
		c.logger.Debug("select ignored", "node_id", id, "reason", "not found")
		return NamesRequest{}, false
	}
	c.details.invalidate()
	c.selection = domain.Selected(id)
	c.panel.snapshot(n.Payload)
	c.logger.Debug("node selected", "node_id", id)

	if c.panel.Category == c.fetchedCategory {
		return NamesRequest{}, false
	}
	c.fetched = nil
	c.fetchedCategory = ""
	c.panel.Suggestions = nil
	return c.requestNames()
}

// ClearSelection unbinds the panel and empties its fields along with the
// suggestions of the dropped category. The node type selector is kept.
func (c *Controller) ClearSelection() {
	c.details.invalidate()
	c.names.invalidate()
	c.selection = domain.Unselected()
	c.panel.reset()
	c.panel.Suggestions = nil
	c.fetched = nil
	c.fetchedCategory = ""
}

// DragStart writes the current panel fields into t as a node template.
func (c *Controller) DragStart(t *dragdrop.Transfer) error {
	if err := dragdrop.Write(t, c.panel.template()); err != nil {
		return err
	}
	c.logger.Debug("drag started", "drag_id", t.ID, "kind", string(c.panel.Kind))
	return nil
}

// Drop creates a node from the template carried by t at the canvas point
// screen projects to. A drop that was not allowed, or whose payload is
// missing or unreadable, does nothing.
func (c *Controller) Drop(t *dragdrop.Transfer, screen domain.Point) (domain.Node, bool) {
	if !t.AcceptDrop() {
		c.logger.Debug("drop ignored", "reason", "effect not allowed")
		return domain.Node{}, false
	}
	tpl, err := dragdrop.Read(t)
	if err != nil {
		c.logger.Debug("drop ignored", "drag_id", t.ID, "error", err)
		return domain.Node{}, false
	}

	kind := tpl.KindOrDefault()
	n := c.graph.CreateNode(kind, c.projector.Project(screen), domain.Payload{
		Label:       tpl.Label(),
		Image:       tpl.Image,
		Description: tpl.Description,
		Notes:       tpl.Notes,
		Category:    tpl.Category,
		NodeType:    kind,
	})
	c.logger.Debug("node created", "drag_id", t.ID, "node_id", n.ID, "kind", string(kind))
	c.render()
	return n, true
}

// ApplyEdit writes the panel fields to the selected node. With no selection
// it returns ErrNoSelection and writes nothing.
func (c *Controller) ApplyEdit() (domain.Node, error) {
	id, ok := c.selection.NodeID()
	if !ok {
		c.logger.Debug("edit ignored", "reason", "no selection")
		return domain.Node{}, ErrNoSelection
	}
	n, err := c.graph.UpdateNodePayload(id, c.panel.patch())
	if err != nil {
		c.logger.Debug("edit ignored", "node_id", id, "error", err)
		return domain.Node{}, err
	}
	c.render()
	return n, nil
}

// Connect adds an edge between two existing nodes.
func (c *Controller) Connect(source, target string) (domain.Edge, error) {
	e, err := c.graph.Connect(source, target)
	if err != nil {
		c.logger.Debug("connect rejected", "source", source, "target", target, "error", err)
		return domain.Edge{}, err
	}
	c.render()
	return e, nil
}

// RemoveNode deletes node id with its edges, clearing the selection if it
// pointed at that node.
func (c *Controller) RemoveNode(id string) error {
	if err := c.graph.RemoveNode(id); err != nil {
		c.logger.Debug("remove rejected", "node_id", id, "error", err)
		return err
	}
	if c.selection.Is(id) {
		c.ClearSelection()
	}
	c.render()
	return nil
}

func (c *Controller) SetName(s string)        { c.panel.Name = s }
func (c *Controller) SetImage(s string)       { c.panel.Image = s }
func (c *Controller) SetDescription(s string) { c.panel.Description = s }
func (c *Controller) SetNotes(s string)       { c.panel.Notes = s }

// SetKind changes the node type selector. Unknown kinds are ignored.
func (c *Controller) SetKind(k domain.NodeKind) {
	if domain.ValidNodeKinds[string(k)] {
		c.panel.Kind = k
	}
}

// ChangeCategory switches the catalog category. Search text, suggestions and
// any pending lookups are dropped, and the full name list of the new
// category is requested. The empty category issues no request.
func (c *Controller) ChangeCategory(category string) (NamesRequest, bool) {
	c.panel.Category = category
	c.panel.Search = ""
	c.panel.Suggestions = nil
	c.fetched = nil
	c.fetchedCategory = ""
	c.details.invalidate()
	return c.requestNames()
}

// TypeSearch updates the search text and drops any pending details for the
// previous text. From the minimum filter length on,
// the last fetched list is filtered locally; shorter text requests the full
// list again.
func (c *Controller) TypeSearch(text string) (NamesRequest, bool) {
	if text != c.panel.Search {
		c.details.invalidate()
	}
	c.panel.Search = text
	if len([]rune(text)) >= c.minFilterLen {
		c.panel.Suggestions = FilterSuggestions(c.fetched, text)
		return NamesRequest{}, false
	}
	return c.requestNames()
}

// SelectSuggestion picks name from the suggestions and requests its details.
func (c *Controller) SelectSuggestion(name string) (DetailsRequest, bool) {
	c.panel.Search = name
	if c.catalog == nil || c.panel.Category == "" {
		return DetailsRequest{}, false
	}
	c.seq++
	ctx := c.details.issue(c.seq)
	return DetailsRequest{Token: c.seq, Category: c.panel.Category, Name: name, ctx: ctx}, true
}

func (c *Controller) requestNames() (NamesRequest, bool) {
	if c.catalog == nil || c.panel.Category == "" {
		c.names.invalidate()
		return NamesRequest{}, false
	}
	c.seq++
	ctx := c.names.issue(c.seq)
	return NamesRequest{Token: c.seq, Category: c.panel.Category, ctx: ctx}, true
}

// FetchNames performs the lookup described by req. It only reads immutable
// collaborators, so it may run off the event loop.
func (c *Controller) FetchNames(req NamesRequest) NamesResult {
	res := NamesResult{Token: req.Token, Category: req.Category}
	if c.catalog == nil || req.ctx == nil {
		res.Err = errNoLookup
		return res
	}
	res.Names, res.Err = c.catalog.ListNames(req.ctx, req.Category)
	if res.Err != nil {
		c.logger.Warn("name lookup failed", "category", req.Category, "token", req.Token, "error", res.Err)
	}
	return res
}

// FetchDetails performs the lookup described by req. Like FetchNames it may
// run off the event loop.
func (c *Controller) FetchDetails(req DetailsRequest) DetailsResult {
	res := DetailsResult{Token: req.Token, Category: req.Category, Name: req.Name}
	if c.catalog == nil || req.ctx == nil {
		res.Err = errNoLookup
		return res
	}
	res.Details, res.Err = c.catalog.GetDetails(req.ctx, req.Category, req.Name)
	if res.Err != nil {
		c.logger.Warn("detail lookup failed", "category", req.Category, "name", req.Name, "token", req.Token, "error", res.Err)
	}
	return res
}

// ApplyNames stores a name list if res answers the latest names request
// and succeeded. It reports whether the panel changed.
func (c *Controller) ApplyNames(res NamesResult) bool {
	if !c.names.current(res.Token) {
		c.logger.Debug("names result discarded", "token", res.Token, "reason", "stale")
		return false
	}
	c.names.invalidate()
	if res.Err != nil {
		return false
	}
	c.fetched = DedupeNames(res.Names)
	c.fetchedCategory = res.Category
	if len([]rune(c.panel.Search)) >= c.minFilterLen {
		c.panel.Suggestions = FilterSuggestions(c.fetched, c.panel.Search)
	} else {
		c.panel.Suggestions = c.fetched
	}
	return true
}

// ApplyDetails fills Name, Image and Description from a detail lookup if
// res answers the latest details request and succeeded. Notes are never
// touched.
func (c *Controller) ApplyDetails(res DetailsResult) bool {
	if !c.details.current(res.Token) {
		c.logger.Debug("details result discarded", "token", res.Token, "reason", "stale")
		return false
	}
	c.details.invalidate()
	if res.Err != nil {
		return false
	}
	c.panel.Name = res.Details.Name
	c.panel.Image = res.Details.Image
	c.panel.Description = res.Details.Description
	return true
}
