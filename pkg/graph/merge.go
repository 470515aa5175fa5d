package graph

import (
	"fmt"
	"maps"
)

// Merge copies the nodes and edges of src into dst. Global nodes (those
// without a schedule, such as components) are shared: a node already present
// in dst is kept and the copy from src is skipped. Any other key collision
// returns ErrDuplicateNodeKey.
func Merge(dst, src *Graph) error {
	for _, n := range src.Nodes() {
		if existing, ok := dst.Node(n.Key); ok {
			if existing.Schedule == "" && n.Schedule == "" {
				continue
			}
			return fmt.Errorf("merge %s: %w", n.Key, ErrDuplicateNodeKey)
		}
		cp := *n
		cp.Meta = maps.Clone(n.Meta)
		if err := dst.AddNode(cp); err != nil {
			return err
		}
	}
	for _, e := range src.Edges() {
		if err := dst.AddEdge(e); err != nil {
			return fmt.Errorf("merge edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	return nil
}
