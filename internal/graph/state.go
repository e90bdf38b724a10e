// Package graph holds the authoritative node and edge collections of an
// editing session and is the only place they are mutated.
package graph

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/graphdeck/internal/domain"
)

// State owns the nodes and edges of one graph. It is not safe for concurrent
// use; the editor mutates it from a single event loop.
type State struct {
	ids   IDGenerator
	nodes []domain.Node
	edges []domain.Edge
}

// Option configures a State.
type Option func(*State)

// WithIDGenerator replaces the default dndnode_0-based generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *State) { s.ids = g }
}

// New creates an empty graph.
func New(opts ...Option) *State {
	s := &State{ids: NewIDGenerator(DefaultIDPrefix, 0)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateNode appends a node with a fresh id. It always succeeds.
func (s *State) CreateNode(kind domain.NodeKind, pos domain.Point, payload domain.Payload) domain.Node {
	var id string
	id, s.ids = s.ids.Next()
	n := domain.Node{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Payload:  payload,
	}
	s.nodes = append(s.nodes, n)
	return n
}

// Connect appends an edge from source to target. Duplicate edges and
// self-loops are accepted; ids that are not in the graph are rejected.
func (s *State) Connect(source, target string) (domain.Edge, error) {
	if s.indexOf(source) < 0 {
		return domain.Edge{}, fmt.Errorf("connect source %s: %w", source, ErrNodeNotFound)
	}
	if s.indexOf(target) < 0 {
		return domain.Edge{}, fmt.Errorf("connect target %s: %w", target, ErrNodeNotFound)
	}
	e := domain.Edge{Source: source, Target: target}
	s.edges = append(s.edges, e)
	return e, nil
}

// UpdateNodePayload shallow-merges patch into the payload of node id.
// An unknown id leaves every node untouched and returns ErrNodeNotFound.
func (s *State) UpdateNodePayload(id string, patch domain.PayloadPatch) (domain.Node, error) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Node{}, fmt.Errorf("update payload %s: %w", id, ErrNodeNotFound)
	}
	s.nodes[i].Payload = patch.Apply(s.nodes[i].Payload)
	return s.nodes[i], nil
}

// RemoveNode deletes node id and every edge touching it. The id is never reissued.
func (s *State) RemoveNode(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNodeNotFound)
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	s.edges = slices.DeleteFunc(s.edges, func(e domain.Edge) bool { return e.Touches(id) })
	return nil
}

// Node returns a copy of node id.
func (s *State) Node(id string) (domain.Node, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Node{}, false
	}
	return s.nodes[i], true
}

// ReadAll returns copies of the node and edge collections in insertion order.
func (s *State) ReadAll() ([]domain.Node, []domain.Edge) {
	return slices.Clone(s.nodes), slices.Clone(s.edges)
}

// Len returns the number of nodes.
func (s *State) Len() int { return len(s.nodes) }

// IDs exposes the generator so callers can interpret id sequence numbers.
func (s *State) IDs() IDGenerator { return s.ids }

func (s *State) indexOf(id string) int {
	return slices.IndexFunc(s.nodes, func(n domain.Node) bool { return n.ID == id })
}
