package graph

import "errors"

// ErrNodeNotFound indicates an operation referenced an id that is not in the graph.
var ErrNodeNotFound = errors.New("node not found")
