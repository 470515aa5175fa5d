package annotate

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/ecsdump/pkg/graph"
)

const (
	// ClusterPrefix marks subgraphs Graphviz should draw as boxes.
	ClusterPrefix = "cluster_"

	globalSchedule = "world"
	sep            = "__"
)

// Escape maps s to [A-Za-z0-9_]. Letters and digits are kept; every other
// byte becomes "_" followed by two lowercase hex digits. The result never
// contains "__", so it can be joined with "__" unambiguously.
func Escape(s string) string {
	const hex = "0123456789abcdef"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('_')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

// BaseID returns the identifier of n before collision suffixes and the
// cluster prefix are applied.
func BaseID(n *graph.Node) string {
	schedule := n.Schedule
	if schedule == "" {
		schedule = globalSchedule
	}
	return Escape(schedule) + sep + n.Kind.String() + sep + Escape(n.Name)
}

// AssignIDs sets [graph.Node.ID] on every node.
//
// Nodes whose base identifiers collide are sorted by full name, then key,
// and suffixed "__1", "__2" and so on. Containers get the "cluster_" prefix
// and keep the unprefixed identifier in Meta["marker"] for the hidden
// marker node that edges attach to.
func AssignIDs(g *graph.Graph) {
	groups := make(map[string][]*graph.Node)
	var order []string
	for _, n := range g.Nodes() {
		base := BaseID(n)
		if _, ok := groups[base]; !ok {
			order = append(order, base)
		}
		groups[base] = append(groups[base], n)
	}

	for _, base := range order {
		nodes := groups[base]
		if len(nodes) == 1 {
			setID(nodes[0], base)
			continue
		}
		slices.SortFunc(nodes, func(a, b *graph.Node) int {
			return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Key, b.Key))
		})
		for i, n := range nodes {
			setID(n, base+sep+strconv.Itoa(i+1))
		}
	}
}

func setID(n *graph.Node, id string) {
	if n.Kind.IsContainer() {
		n.ID = ClusterPrefix + id
		n.Meta["marker"] = id
		return
	}
	n.ID = id
}

// Endpoint returns the identifier edges of n should attach to: the marker
// node for containers, the node itself otherwise.
func Endpoint(n *graph.Node) string {
	if marker, ok := n.Meta["marker"].(string); ok && n.Kind.IsContainer() {
		return marker
	}
	return n.ID
}
