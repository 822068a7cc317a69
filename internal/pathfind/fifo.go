package pathfind

import (
	"math"

	"github.com/Mx2468/bellman-ford-arbitrage/internal/graph"
)

// FIFO is the queue-driven ("active vertex") variant: only vertices whose
// distance decreased are re-examined, and after every relaxation attempt the
// parent chain of the target is walked to detect a cycle immediately, so a
// negative cycle terminates the run long before |V| full passes would.
//
// The active queue is seeded with every vertex of the graph, not just the
// source. This eagerly propagates from everywhere on the first round and is
// preserved as-is for behavioural compatibility with the first scanner
// implementation; it is not textbook SPFA.
type FIFO struct {
	g      *graph.Graph
	source string

	weights map[graph.Pair]float64
	dist    map[string]float64
	parent  map[string]string

	queue  []string
	queued map[string]struct{}
}

// NewFIFO binds an engine to g and source, snapshotting g's edge weights.
func NewFIFO(g *graph.Graph, source string) *FIFO {
	f := &FIFO{
		g:       g,
		source:  source,
		weights: make(map[graph.Pair]float64, g.EdgeCount()),
		dist:    make(map[string]float64, g.VertexCount()),
		parent:  make(map[string]string, g.VertexCount()),
		queued:  make(map[string]struct{}, g.VertexCount()),
	}
	for _, e := range g.Edges() {
		f.weights[graph.Pair{From: e.From, To: e.To}] = e.Weight
	}
	return f
}

func (f *FIFO) initialise() {
	for _, v := range f.g.Vertices() {
		f.dist[v] = math.Inf(1)
		f.parent[v] = NoParent
	}
	f.dist[f.source] = 0
}

// enqueue appends v unless it is already queued. The membership set keeps the
// duplicate check O(1); the queue never holds a vertex twice.
func (f *FIFO) enqueue(v string) {
	if _, ok := f.queued[v]; ok {
		return
	}
	f.queue = append(f.queue, v)
	f.queued[v] = struct{}{}
}

func (f *FIFO) dequeue() string {
	v := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.queued, v)
	return v
}

// relax applies the edge from->to on strict improvement only, re-activating
// the target when its distance drops.
func (f *FIFO) relax(from, to string) error {
	w, ok := f.weights[graph.Pair{From: from, To: to}]
	if !ok {
		return ErrSnapshotStale
	}
	if f.dist[to] > f.dist[from]+w {
		f.dist[to] = f.dist[from] + w
		f.parent[to] = from
		f.enqueue(to)
	}
	return nil
}

// parentCycle walks the parent chain upward from v. Reaching a vertex with no
// parent means the chain ends at a root: no cycle. Meeting a predecessor
// already seen on the walk means the parent pointers form a cycle, which only
// a negative cycle can produce under strict-improvement relaxation.
func (f *FIFO) parentCycle(v string) bool {
	visited := make(map[string]struct{})
	current := v
	for {
		p := f.parent[current]
		if p == NoParent {
			return false
		}
		if _, ok := visited[p]; ok {
			return true
		}
		visited[p] = struct{}{}
		current = p
	}
}

// Run drains the active queue, relaxing the outgoing edges of each popped
// vertex and checking the target's parent chain after every attempt. It
// returns false the moment a parent cycle appears; true once the queue is
// empty. Zero- and positive-weight cycles cannot requeue forever because a
// vertex is only re-activated on strict distance improvement.
func (f *FIFO) Run() (bool, error) {
	f.initialise()
	for _, v := range f.g.Vertices() {
		f.enqueue(v)
	}
	for len(f.queue) > 0 {
		u := f.dequeue()
		neighbors, err := f.g.Neighbors(u)
		if err != nil {
			// The vertex existed at construction time but not any more.
			return false, ErrSnapshotStale
		}
		for _, v := range neighbors {
			if err := f.relax(u, v); err != nil {
				return false, err
			}
			// The check runs once per neighbour visited, whether or not
			// the relaxation improved anything.
			if f.parentCycle(v) {
				return false, nil
			}
		}
	}
	return true, nil
}

// Dist maps every vertex to its best-known distance from the source.
// Unreachable vertices stay at +Inf.
func (f *FIFO) Dist() map[string]float64 { return f.dist }

// Parent maps every vertex to its predecessor on the shortest-path tree,
// NoParent for the source and for unreachable vertices.
func (f *FIFO) Parent() map[string]string { return f.parent }
