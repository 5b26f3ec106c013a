// SPDX-License-Identifier: MIT

package flowgraph

import (
	"fmt"
	"sort"
	"strings"
)

// Visitation colors for DFS.
const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully explored
)

// DetectCycles returns the feedback loops of g found as DFS back edges.
// Each loop is closed ([a, b, a]) and rotated to start at its
// lexicographically minimal vertex sequence, so the same loop always reads
// the same way. Loops are sorted by their comma-joined signature; nil means
// the graph is acyclic.
//
// Complexity:
//   - Time O(V + E + C·L), Memory O(V + L_max).
func DetectCycles(g *Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	verts := g.Vertices()
	d := &detector{
		g:     g,
		state: make(map[string]int, len(verts)),
		path:  make([]string, 0, len(verts)),
		seen:  make(map[string]struct{}),
	}
	for _, v := range verts {
		if d.state[v] == white {
			if err := d.visit(v); err != nil {
				return nil, fmt.Errorf("flowgraph: DetectCycles: %w", err)
			}
		}
	}
	if len(d.cycles) == 0 {
		return nil, nil
	}
	sort.Slice(d.cycles, func(i, j int) bool {
		return strings.Join(d.cycles[i], ",") < strings.Join(d.cycles[j], ",")
	})
	return d.cycles, nil
}

type detector struct {
	g      *Graph
	state  map[string]int
	path   []string
	seen   map[string]struct{}
	cycles [][]string
}

func (d *detector) visit(id string) error {
	d.state[id] = gray
	d.path = append(d.path, id)

	next, err := d.g.Successors(id)
	if err != nil {
		return err
	}
	for _, nbr := range next {
		switch d.state[nbr] {
		case white:
			if err = d.visit(nbr); err != nil {
				return err
			}
		case gray:
			d.record(nbr)
		}
	}

	d.path = d.path[:len(d.path)-1]
	d.state[id] = black
	return nil
}

// record closes the loop that re-enters start and keeps it if new.
func (d *detector) record(start string) {
	idx := indexOf(d.path, start)
	rot := minimalRotation(d.path[idx:])
	closed := append(rot, rot[0])
	sig := strings.Join(closed, ",")
	if _, ok := d.seen[sig]; ok {
		return
	}
	d.seen[sig] = struct{}{}
	d.cycles = append(d.cycles, closed)
}

func indexOf(s []string, val string) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}
	return -1
}

// minimalRotation is Booth's algorithm: the lexicographically least
// rotation of s in O(n). The result is a fresh slice.
func minimalRotation(s []string) []string {
	n := len(s)
	doubled := make([]string, 0, 2*n)
	doubled = append(append(doubled, s...), s...)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}
	return append([]string(nil), doubled[k:k+n]...)
}
