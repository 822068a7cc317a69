// Package graph models currencies as vertices of a directed, edge-weighted
// graph. Edges are keyed by their ordered endpoint pair, so inserting an edge
// for an existing pair replaces the stored weight rather than silently keeping
// the old one. A Graph is not safe for concurrent use.
package graph

import (
	"errors"
	"sort"
)

var (
	// ErrVertexNotFound indicates an operation referenced a vertex that is
	// not a member of the graph.
	ErrVertexNotFound = errors.New("graph: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a directed edge that
	// does not exist.
	ErrEdgeNotFound = errors.New("graph: edge not found")
)

// Pair is an ordered (From, To) currency pair.
type Pair struct {
	From, To string
}

// Edge is a directed, weighted connection between two currencies. Identity is
// the (From, To) pair alone; the weight is payload.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Graph owns its vertex and edge sets outright.
type Graph struct {
	vertices map[string]struct{}
	edges    map[Pair]float64
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		vertices: make(map[string]struct{}),
		edges:    make(map[Pair]float64),
	}
}

// AddVertex adds v to the vertex set. Idempotent.
func (g *Graph) AddVertex(v string) {
	g.vertices[v] = struct{}{}
}

// AddEdge inserts e, replacing the weight if an edge for the same endpoint
// pair already exists, and adds both endpoints as vertices.
func (g *Graph) AddEdge(e Edge) {
	g.edges[Pair{From: e.From, To: e.To}] = e.Weight
	g.AddVertex(e.From)
	g.AddVertex(e.To)
}

// RemoveEdge removes the directed edge from->to. Each endpoint is then
// removed from the vertex set if no remaining edge touches it, checked
// independently for source and target.
func (g *Graph) RemoveEdge(from, to string) error {
	p := Pair{From: from, To: to}
	if _, ok := g.edges[p]; !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, p)
	if !g.hasIncidentEdge(from) {
		delete(g.vertices, from)
	}
	if !g.hasIncidentEdge(to) {
		delete(g.vertices, to)
	}
	return nil
}

// RemoveVertex removes v and every edge incident to it, in either direction.
func (g *Graph) RemoveVertex(v string) error {
	if _, ok := g.vertices[v]; !ok {
		return ErrVertexNotFound
	}
	for p := range g.edges {
		if p.From == v || p.To == v {
			delete(g.edges, p)
		}
	}
	delete(g.vertices, v)
	return nil
}

func (g *Graph) hasIncidentEdge(v string) bool {
	for p := range g.edges {
		if p.From == v || p.To == v {
			return true
		}
	}
	return false
}

// Weight returns the weight of the directed edge from->to.
func (g *Graph) Weight(from, to string) (float64, error) {
	w, ok := g.edges[Pair{From: from, To: to}]
	if !ok {
		return 0, ErrEdgeNotFound
	}
	return w, nil
}

// Neighbors returns the targets of v's outgoing edges in sorted order. A
// member vertex with no outgoing edges yields an empty slice, not an error.
func (g *Graph) Neighbors(v string) ([]string, error) {
	if _, ok := g.vertices[v]; !ok {
		return nil, ErrVertexNotFound
	}
	out := make([]string, 0)
	for p := range g.edges {
		if p.From == v {
			out = append(out, p.To)
		}
	}
	sort.Strings(out)
	return out, nil
}

// HasVertex reports whether v is a member of the vertex set.
func (g *Graph) HasVertex(v string) bool {
	_, ok := g.vertices[v]
	return ok
}

// Vertices returns every vertex in sorted order, so iteration over the graph
// is deterministic.
func (g *Graph) Vertices() []string {
	out := make([]string, 0, len(g.vertices))
	for v := range g.vertices {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Edges returns every edge, sorted by (From, To).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for p, w := range g.edges {
		out = append(out, Edge{From: p.From, To: p.To, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// BuildFromRates adds one directed edge per (from, to) -> rate entry. Rates
// are stored as edge weights as-is: a caller wanting arbitrage semantics must
// transform them (e.g. -log(rate)) before building.
func (g *Graph) BuildFromRates(rates map[Pair]float64) {
	for p, rate := range rates {
		g.AddEdge(Edge{From: p.From, To: p.To, Weight: rate})
	}
}

// Clear empties both the vertex and the edge set.
func (g *Graph) Clear() {
	g.vertices = make(map[string]struct{})
	g.edges = make(map[Pair]float64)
}
