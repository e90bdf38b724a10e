package graph

import (
	"strconv"
	"strings"
)

// DefaultIDPrefix matches the ids produced by the drop handler: dndnode_0, dndnode_1, ...
const DefaultIDPrefix = "dndnode_"

// IDGenerator hands out monotonically increasing node ids. It is a value:
// Next returns the id together with the successor generator, so two graphs
// never share a counter.
type IDGenerator struct {
	prefix string
	next   uint64
}

// NewIDGenerator returns a generator whose first id is prefix+start.
func NewIDGenerator(prefix string, start uint64) IDGenerator {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return IDGenerator{prefix: prefix, next: start}
}

// Next returns the next id and the advanced generator.
func (g IDGenerator) Next() (string, IDGenerator) {
	if g.prefix == "" {
		g.prefix = DefaultIDPrefix
	}
	id := g.prefix + strconv.FormatUint(g.next, 10)
	g.next++
	return id, g
}

// Peek returns the sequence number the next call to Next will use.
func (g IDGenerator) Peek() uint64 { return g.next }

// Seq extracts the numeric suffix of an id produced by this generator.
func (g IDGenerator) Seq(id string) (uint64, bool) {
	prefix := g.prefix
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
