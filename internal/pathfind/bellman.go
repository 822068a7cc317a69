// Package pathfind detects negative-weight cycles reachable from a source
// currency: Classic runs textbook full-relaxation Bellman-Ford, FIFO a
// queue-driven incremental variant with early exit.
//
// Both engines copy the graph's edge weights into a private snapshot at
// construction time and never refresh it. An engine is valid only for the
// graph state it was built against; mutating the graph and then running the
// engine is a misuse and surfaces as ErrSnapshotStale.
package pathfind

import (
	"errors"
	"math"

	"github.com/Mx2468/bellman-ford-arbitrage/internal/graph"
)

// ErrSnapshotStale reports an edge encountered during relaxation with no
// weight in the engine's construction-time snapshot, i.e. the graph was
// mutated after the engine was built. This is a contract violation, not a
// normal operational error.
var ErrSnapshotStale = errors.New("pathfind: graph mutated after engine construction")

// NoParent marks a vertex without a predecessor in the parent map. Currency
// codes are never empty, so the empty string is free to carry this meaning.
const NoParent = ""

// Classic runs full Bellman-Ford from a fixed source: |V|-1 relaxation sweeps
// over every edge, then one verification sweep. Run reports false when a
// negative-weight cycle is reachable from the source.
type Classic struct {
	g      *graph.Graph
	source string

	weights map[graph.Pair]float64
	dist    map[string]float64
	parent  map[string]string
}

// NewClassic binds an engine to g and source, snapshotting g's edge weights.
func NewClassic(g *graph.Graph, source string) *Classic {
	c := &Classic{
		g:       g,
		source:  source,
		weights: make(map[graph.Pair]float64, g.EdgeCount()),
		dist:    make(map[string]float64, g.VertexCount()),
		parent:  make(map[string]string, g.VertexCount()),
	}
	for _, e := range g.Edges() {
		c.weights[graph.Pair{From: e.From, To: e.To}] = e.Weight
	}
	return c
}

func (c *Classic) initialise() {
	for _, v := range c.g.Vertices() {
		c.dist[v] = math.Inf(1)
		c.parent[v] = NoParent
	}
	c.dist[c.source] = 0
}

// relax applies the edge from->to when it strictly improves the target's
// distance. Ties never move the parent pointer. An unreachable source keeps
// +Inf + weight = +Inf, which can never beat any stored distance.
func (c *Classic) relax(from, to string) error {
	w, ok := c.weights[graph.Pair{From: from, To: to}]
	if !ok {
		return ErrSnapshotStale
	}
	if c.dist[to] > c.dist[from]+w {
		c.dist[to] = c.dist[from] + w
		c.parent[to] = from
	}
	return nil
}

// Run executes the three phases in order: initialise, |V|-1 relaxation
// sweeps, one verification sweep. It returns true when no negative cycle is
// reachable from the source; Dist and Parent then hold the shortest-path
// tree. On a false result the maps are not meaningful.
func (c *Classic) Run() (bool, error) {
	c.initialise()
	edges := c.g.Edges()
	for pass := 1; pass < c.g.VertexCount(); pass++ {
		for _, e := range edges {
			if err := c.relax(e.From, e.To); err != nil {
				return false, err
			}
		}
	}
	for _, e := range edges {
		w, ok := c.weights[graph.Pair{From: e.From, To: e.To}]
		if !ok {
			return false, ErrSnapshotStale
		}
		if c.dist[e.To] > c.dist[e.From]+w {
			return false, nil
		}
	}
	return true, nil
}

// Dist maps every vertex to its best-known distance from the source.
// Unreachable vertices stay at +Inf.
func (c *Classic) Dist() map[string]float64 { return c.dist }

// Parent maps every vertex to its predecessor on the shortest-path tree,
// NoParent for the source and for unreachable vertices.
func (c *Classic) Parent() map[string]string { return c.parent }
