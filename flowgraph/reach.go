// SPDX-License-Identifier: MIT

package flowgraph

import "fmt"

// Reachable returns every vertex reachable from roots (roots included) in
// breadth-first visit order. Roots are expanded in the order given.
//
// Errors:
//   - ErrNilGraph for a nil graph.
//   - ErrVertexNotFound for an unknown root.
func Reachable(g *Graph, roots ...string) ([]string, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	visited := make(map[string]bool, g.VertexCount())
	queue := make([]string, 0, len(roots))
	for _, r := range roots {
		if !g.HasVertex(r) {
			return nil, fmt.Errorf("Reachable(%q): %w", r, ErrVertexNotFound)
		}
		if !visited[r] {
			visited[r] = true
			queue = append(queue, r)
		}
	}

	order := make([]string, 0, g.VertexCount())
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		next, err := g.Successors(id)
		if err != nil {
			return nil, err
		}
		for _, nbr := range next {
			if !visited[nbr] {
				visited[nbr] = true
				queue = append(queue, nbr)
			}
		}
	}
	return order, nil
}

// Unreachable returns, sorted, the vertices Reachable(g, roots...) misses.
func Unreachable(g *Graph, roots ...string) ([]string, error) {
	seen, err := Reachable(g, roots...)
	if err != nil {
		return nil, err
	}
	hit := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		hit[id] = struct{}{}
	}
	var out []string
	for _, id := range g.Vertices() {
		if _, ok := hit[id]; !ok {
			out = append(out, id)
		}
	}
	return out, nil
}
