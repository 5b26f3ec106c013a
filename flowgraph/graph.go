// SPDX-License-Identifier: MIT
// Package: sysdiag/flowgraph
//
// graph.go — directed signal-flow multigraph between sibling Systems.
//
// Purpose:
//   - Hold a snapshot of "who feeds whom" inside one composite System, so
//     loop detection and reachability run on plain string IDs.
//
// Contract:
//   - Vertex IDs are subsystem names (unique among siblings, never empty).
//   - Edges are directed From→To and remember the wire that carries them.
//   - Parallel edges through different wires and self-loops are allowed.
//
// Concurrency:
//   - Graph methods are safe for concurrent use (single sync.RWMutex).
//
// Determinism:
//   - Vertices(), Edges() and Successors() return sorted slices.

package flowgraph

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sentinel errors for flowgraph operations.
var (
	// ErrNilGraph indicates a nil *Graph argument.
	ErrNilGraph = errors.New("flowgraph: graph is nil")

	// ErrNilSystem indicates a nil *diagram.System argument.
	ErrNilSystem = errors.New("flowgraph: system is nil")

	// ErrEmptyVertexID indicates an empty vertex identifier.
	ErrEmptyVertexID = errors.New("flowgraph: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a missing vertex.
	ErrVertexNotFound = errors.New("flowgraph: vertex not found")
)

// Edge is one directed signal path From→To carried by Wire.
type Edge struct {
	// ID is "<wire>-><to>"; a wire fans out to one edge per sink System.
	ID string

	From string
	To   string
	Wire string
}

// Graph is a directed multigraph of subsystem names.
type Graph struct {
	mu sync.RWMutex

	vertices map[string]struct{}
	edges    map[string]*Edge

	// adjacency[from][to][edgeID] = struct{}{}
	adjacency map[string]map[string]map[string]struct{}
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		vertices:  make(map[string]struct{}),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]map[string]struct{}),
	}
}

// AddVertex inserts id. Adding an existing vertex is a no-op.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.vertices[id]; ok {
		return nil
	}
	g.vertices[id] = struct{}{}
	g.adjacency[id] = make(map[string]map[string]struct{})

	return nil
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]
	return ok
}

// AddEdge inserts the edge from→to carried by wire and returns its ID.
// Re-adding the same (wire, to) pair is a no-op returning the same ID.
//
// Errors:
//   - ErrEmptyVertexID if from or to is empty.
//   - ErrVertexNotFound if either endpoint is missing.
func (g *Graph) AddEdge(from, to, wire string) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range []string{from, to} {
		if _, ok := g.vertices[id]; !ok {
			return "", fmt.Errorf("AddEdge(%q): %w", id, ErrVertexNotFound)
		}
	}
	eid := wire + "->" + to
	if _, ok := g.edges[eid]; ok {
		return eid, nil
	}
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Wire: wire}
	if g.adjacency[from][to] == nil {
		g.adjacency[from][to] = make(map[string]struct{})
	}
	g.adjacency[from][to][eid] = struct{}{}

	return eid, nil
}

// Vertices returns all vertex IDs sorted ascending.
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Edges returns copies of all edges sorted by ID.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Successors returns the distinct targets of edges leaving id, sorted.
func (g *Graph) Successors(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	adj, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("Successors(%q): %w", id, ErrVertexNotFound)
	}
	out := make([]string, 0, len(adj))
	for to := range adj {
		out = append(out, to)
	}
	sort.Strings(out)
	return out, nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}
