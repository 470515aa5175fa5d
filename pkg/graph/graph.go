package graph

import (
	"errors"
	"slices"

	"github.com/matzehuels/ecsdump/pkg/dot"
)

var (
	// ErrInvalidNodeKey is returned by [Graph.AddNode] when the key is empty.
	ErrInvalidNodeKey = errors.New("node key must not be empty")

	// ErrDuplicateNodeKey is returned by [Graph.AddNode] when a node with the
	// same key already exists.
	ErrDuplicateNodeKey = errors.New("duplicate node key")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when From does not
	// exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when To does not
	// exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Metadata stores arbitrary values attached to nodes or the graph.
type Metadata map[string]any

// NodeKind tags a node variant.
type NodeKind int

const (
	KindSystem NodeKind = iota
	KindSet
	KindResource
	KindEvent
	// KindSchedule is the root container of one schedule. It is never pruned.
	KindSchedule
	KindRenderNode
	KindSubGraph
)

var nodeKindNames = [...]string{"system", "set", "resource", "event", "schedule", "render_node", "sub_graph"}

// String returns the short kind tag used in identifiers.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// IsContainer reports whether nodes of this kind are drawn as clusters.
func (k NodeKind) IsContainer() bool {
	return k == KindSet || k == KindSchedule || k == KindSubGraph
}

// EdgeKind tags an edge variant.
type EdgeKind int

const (
	// Order means From runs before To.
	Order EdgeKind = iota
	// Contains is the containment relation. It is stored as Node.Parent.
	Contains
	// Ambiguous joins two systems with conflicting access and no order.
	Ambiguous
	// Access joins a system to a component it reads or writes.
	Access
	// Membership is a secondary set membership of From in To.
	Membership
	// Slot joins an output slot of From to an input slot of To.
	Slot
)

var edgeKindNames = [...]string{"order", "contains", "ambiguous", "access", "membership", "slot"}

func (k EdgeKind) String() string {
	if int(k) < len(edgeKindNames) {
		return edgeKindNames[k]
	}
	return "unknown"
}

// AccessKind distinguishes reads from writes on [Access] edges.
type AccessKind int

const (
	Read AccessKind = iota
	Write
)

func (k AccessKind) String() string {
	if k == Write {
		return "write"
	}
	return "read"
}

// Node is a vertex of the derived graph.
type Node struct {
	Key      string   // Stable key built from source ids
	Kind     NodeKind // Variant tag
	Label    string   // Display text
	Name     string   // Declared full name
	Schedule string   // Owning schedule label, empty for global nodes
	Parent   string   // Immediate container key, empty at top level
	Meta     Metadata // Kind-specific data (never nil after AddNode)

	// ID and Attrs are filled by the annotator.
	ID    string
	Attrs dot.Attrs
}

// Edge is a typed connection between two node keys.
type Edge struct {
	From   string
	To     string
	Kind   EdgeKind
	Access AccessKind // Only meaningful for Access edges
	Label  string

	// Ports are only set on Slot edges.
	FromPort string
	ToPort   string

	Attrs dot.Attrs
}

// Graph is the derived graph of one dump.
//
// The zero value is not usable; create graphs with [New].
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
	meta  Metadata
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		meta:  Metadata{},
	}
}

// Meta returns graph-level metadata. The map is never nil.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds n. Nodes keep insertion order.
func (g *Graph) AddNode(n Node) error {
	if n.Key == "" {
		return ErrInvalidNodeKey
	}
	if _, exists := g.nodes[n.Key]; exists {
		return ErrDuplicateNodeKey
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[n.Key] = node
	g.order = append(g.order, n.Key)
	return nil
}

// Node returns the node with the given key.
func (g *Graph) Node(key string) (*Node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// HasNode reports whether key exists.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.nodes[k])
	}
	return out
}

// NodesOfKind returns the nodes of the given kinds in insertion order.
func (g *Graph) NodesOfKind(kinds ...NodeKind) []*Node {
	var out []*Node
	for _, k := range g.order {
		if n := g.nodes[k]; slices.Contains(kinds, n.Kind) {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// RemoveNode deletes a node and every edge touching it. Children of the
// removed node move to its parent.
func (g *Graph) RemoveNode(key string) {
	n, ok := g.nodes[key]
	if !ok {
		return
	}
	for _, other := range g.nodes {
		if other.Parent == key {
			other.Parent = n.Parent
		}
	}
	delete(g.nodes, key)
	g.order = slices.DeleteFunc(g.order, func(k string) bool { return k == key })
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == key || e.To == key })
}

// AddEdge adds e. A Contains edge sets To's parent to From instead of being
// stored.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Kind == Contains {
		g.nodes[e.To].Parent = e.From
		return nil
	}
	g.edges = append(g.edges, e)
	return nil
}

// Edges returns a copy of all stored edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EdgesOfKind returns the stored edges of the given kind.
func (g *Graph) EdgesOfKind(kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// EdgeCount returns the number of stored edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// SetEdges replaces the edge list. Callers are responsible for endpoints.
func (g *Graph) SetEdges(edges []Edge) { g.edges = edges }

// RemoveEdgesFunc removes every edge for which del returns true and returns
// how many were removed.
func (g *Graph) RemoveEdgesFunc(del func(Edge) bool) int {
	before := len(g.edges)
	g.edges = slices.DeleteFunc(g.edges, del)
	return before - len(g.edges)
}

// EdgeAt returns a pointer to the i-th stored edge for in-place annotation.
func (g *Graph) EdgeAt(i int) *Edge { return &g.edges[i] }

// Children returns the direct children of key in insertion order. An empty
// key returns the top-level nodes.
func (g *Graph) Children(key string) []*Node {
	var out []*Node
	for _, k := range g.order {
		if n := g.nodes[k]; n.Parent == key {
			out = append(out, n)
		}
	}
	return out
}

// Roots returns the top-level nodes.
func (g *Graph) Roots() []*Node { return g.Children("") }

// Ancestors returns the parent chain of key, innermost first. It stops at a
// repeated key so malformed chains terminate.
func (g *Graph) Ancestors(key string) []string {
	var out []string
	seen := map[string]bool{key: true}
	n, ok := g.nodes[key]
	for ok && n.Parent != "" && !seen[n.Parent] {
		seen[n.Parent] = true
		out = append(out, n.Parent)
		n, ok = g.nodes[n.Parent]
	}
	return out
}

// Encloses reports whether container is a proper ancestor of key.
func (g *Graph) Encloses(container, key string) bool {
	return slices.Contains(g.Ancestors(key), container)
}

// Contains returns the containment relation as edges, parent first.
func (g *Graph) Contains() []Edge {
	var out []Edge
	for _, k := range g.order {
		if n := g.nodes[k]; n.Parent != "" {
			out = append(out, Edge{From: n.Parent, To: n.Key, Kind: Contains})
		}
	}
	return out
}

// Degree returns the number of stored edges touching key.
func (g *Graph) Degree(key string) int {
	d := 0
	for _, e := range g.edges {
		if e.From == key || e.To == key {
			d++
		}
	}
	return d
}
