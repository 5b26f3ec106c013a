// SPDX-License-Identifier: MIT

package flowgraph

import (
	"github.com/katalvlaran/sysdiag/diagram"
)

// FromSystem snapshots the signal flow between the direct subsystems of sys.
//
// Implementation:
//   - Stage 1: One vertex per subsystem.
//   - Stage 2: For each signal wire whose source is a subsystem port, one
//     edge to the owner of every sibling-level sink.
//
// Boundary connections of sys and plain wires contribute no edges.
func FromSystem(sys *diagram.System) (*Graph, error) {
	if sys == nil {
		return nil, ErrNilSystem
	}
	g := NewGraph()
	for _, c := range sys.Subsystems() {
		if err := g.AddVertex(c.Name()); err != nil {
			return nil, err
		}
	}
	for _, w := range sys.Wires() {
		if w.Kind() != diagram.SignalWire {
			continue
		}
		src := w.Source()
		if src == nil || src.Owner() == sys {
			continue
		}
		for _, sink := range w.Sinks() {
			if sink.Owner() == sys {
				continue
			}
			if _, err := g.AddEdge(src.Owner().Name(), sink.Owner().Name(), w.Name()); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Roots returns the names of the subsystems where signals enter sys: every
// Source block and every subsystem fed directly by one of sys's own input
// ports. The result follows subsystem order without duplicates.
func Roots(sys *diagram.System) []string {
	if sys == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	fed := make(map[string]struct{})
	for _, w := range sys.Wires() {
		if src := w.Source(); src != nil && src.Owner() == sys {
			for _, sink := range w.Sinks() {
				if sink.Owner() != sys {
					fed[sink.Owner().Name()] = struct{}{}
				}
			}
		}
	}
	for _, c := range sys.Subsystems() {
		if _, ok := fed[c.Name()]; ok || c.Kind() == diagram.KindSource {
			add(c.Name())
		}
	}
	return out
}
