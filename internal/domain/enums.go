package domain

import "fmt"

type NodeKind string

const (
	KindInput   NodeKind = "input"
	KindDefault NodeKind = "default"
	KindOutput  NodeKind = "output"
)

// NodeKinds lists the selectable node kinds in panel order.
var NodeKinds = []NodeKind{KindInput, KindDefault, KindOutput}

// ValidNodeKinds is the canonical set of accepted node kind strings.
var ValidNodeKinds = map[string]bool{
	"input": true, "default": true, "output": true,
}

// ParseNodeKind converts s into a NodeKind, rejecting unknown values.
func ParseNodeKind(s string) (NodeKind, error) {
	if !ValidNodeKinds[s] {
		return "", fmt.Errorf("unknown node kind %q", s)
	}
	return NodeKind(s), nil
}

// FallbackLabel is the label given to a dropped node whose template has no name.
func (k NodeKind) FallbackLabel() string {
	return string(k) + " node"
}

// Categories are the catalog groups offered by the panel's category selector.
// The empty category is valid and means "no catalog lookups".
var Categories = []string{
	"ammo", "armor", "ashofwar", "boss", "creature", "incantation", "item",
	"npc", "shield", "sorcery", "spirit", "talisman", "weapon",
}

// CategoryTitles maps each category to its display title.
var CategoryTitles = map[string]string{
	"ammo":        "Ammo",
	"armor":       "Armor",
	"ashofwar":    "Ash Of War",
	"boss":        "Boss",
	"creature":    "Creature",
	"incantation": "Incantation",
	"item":        "Item",
	"npc":         "NPC",
	"shield":      "Shield",
	"sorcery":     "Sorcery",
	"spirit":      "Spirit",
	"talisman":    "Talisman",
	"weapon":      "Weapon",
}

// IsCategory reports whether c is a known catalog category.
func IsCategory(c string) bool {
	_, ok := CategoryTitles[c]
	return ok
}
