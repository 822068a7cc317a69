package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraphIsEmpty(t *testing.T) {
	g := New()
	assert.Zero(t, g.VertexCount())
	assert.Zero(t, g.EdgeCount())
}

func TestAddVertexIdempotent(t *testing.T) {
	g := New()
	g.AddVertex("USD")
	g.AddVertex("USD")
	assert.Equal(t, 1, g.VertexCount())
	assert.True(t, g.HasVertex("USD"))
}

func TestAddEdgeAddsEndpoints(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.92})
	assert.True(t, g.HasVertex("USD"))
	assert.True(t, g.HasVertex("EUR"))
	w, err := g.Weight("USD", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 0.92, w, 1e-12)
}

func TestAddEdgeReplacesWeightForExistingPair(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.92})
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.93})

	assert.Equal(t, 1, g.EdgeCount())
	w, err := g.Weight("USD", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 0.93, w, 1e-12)
}

func TestNoImplicitReverseEdge(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.92})
	_, err := g.Weight("EUR", "USD")
	assert.ErrorIs(t, err, ErrEdgeNotFound)
}

func TestWeightMissingEdge(t *testing.T) {
	g := New()
	_, err := g.Weight("USD", "EUR")
	assert.ErrorIs(t, err, ErrEdgeNotFound)
}

func TestRemoveEdgeMissing(t *testing.T) {
	g := New()
	assert.ErrorIs(t, g.RemoveEdge("USD", "EUR"), ErrEdgeNotFound)
}

func TestRemoveEdgeOrphansBothEndpoints(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.92})
	require.NoError(t, g.RemoveEdge("USD", "EUR"))

	assert.False(t, g.HasVertex("USD"))
	assert.False(t, g.HasVertex("EUR"))
	assert.Zero(t, g.EdgeCount())
}

func TestRemoveEdgeKeepsConnectedEndpoints(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.92})
	g.AddEdge(Edge{From: "EUR", To: "GBP", Weight: 0.86})
	require.NoError(t, g.RemoveEdge("USD", "EUR"))

	// USD lost its only edge; EUR is still the source of EUR->GBP.
	assert.False(t, g.HasVertex("USD"))
	assert.True(t, g.HasVertex("EUR"))
	assert.True(t, g.HasVertex("GBP"))
}

func TestRemoveVertexMissing(t *testing.T) {
	g := New()
	assert.ErrorIs(t, g.RemoveVertex("USD"), ErrVertexNotFound)
}

func TestRemoveVertexCascadesEdges(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 1})
	g.AddEdge(Edge{From: "EUR", To: "GBP", Weight: 1})
	g.AddEdge(Edge{From: "GBP", To: "USD", Weight: 1})
	require.NoError(t, g.RemoveVertex("EUR"))

	assert.False(t, g.HasVertex("EUR"))
	assert.Equal(t, []Edge{{From: "GBP", To: "USD", Weight: 1}}, g.Edges())
	// The surviving edge keeps both its endpoints alive.
	assert.ElementsMatch(t, []string{"GBP", "USD"}, g.Vertices())
}

func TestNeighborsMissingVertex(t *testing.T) {
	g := New()
	_, err := g.Neighbors("USD")
	assert.ErrorIs(t, err, ErrVertexNotFound)
}

func TestNeighborsNoOutgoingEdges(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.92})
	n, err := g.Neighbors("EUR")
	require.NoError(t, err)
	assert.Empty(t, n)
}

func TestNeighborsSorted(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "GBP", Weight: 1})
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 1})
	g.AddEdge(Edge{From: "USD", To: "CAD", Weight: 1})
	g.AddEdge(Edge{From: "EUR", To: "USD", Weight: 1})

	n, err := g.Neighbors("USD")
	require.NoError(t, err)
	assert.Equal(t, []string{"CAD", "EUR", "GBP"}, n)
}

func TestStandaloneVertexSurvivesUnrelatedRemovals(t *testing.T) {
	g := New()
	g.AddVertex("JPY")
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.92})
	require.NoError(t, g.RemoveEdge("USD", "EUR"))
	assert.True(t, g.HasVertex("JPY"))
}

func TestBuildFromRates(t *testing.T) {
	g := New()
	g.BuildFromRates(map[Pair]float64{
		{From: "USD", To: "EUR"}: 0.92,
		{From: "EUR", To: "USD"}: 1 / 0.92,
		{From: "USD", To: "GBP"}: 0.79,
	})
	assert.Equal(t, 3, g.EdgeCount())
	assert.ElementsMatch(t, []string{"EUR", "GBP", "USD"}, g.Vertices())

	w, err := g.Weight("EUR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 1/0.92, w, 1e-12)
}

func TestClear(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "USD", To: "EUR", Weight: 0.92})
	g.AddVertex("JPY")
	g.Clear()
	assert.Zero(t, g.VertexCount())
	assert.Zero(t, g.EdgeCount())
}

func TestVerticesAndEdgesSorted(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: "GBP", To: "USD", Weight: 3})
	g.AddEdge(Edge{From: "EUR", To: "GBP", Weight: 2})
	g.AddEdge(Edge{From: "EUR", To: "CAD", Weight: 1})

	assert.Equal(t, []string{"CAD", "EUR", "GBP", "USD"}, g.Vertices())
	assert.Equal(t, []Edge{
		{From: "EUR", To: "CAD", Weight: 1},
		{From: "EUR", To: "GBP", Weight: 2},
		{From: "GBP", To: "USD", Weight: 3},
	}, g.Edges())
}
