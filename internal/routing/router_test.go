package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urgupguide/tourism-backend-go/internal/graph"
	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// lineGraph builds a connected north-south chain of nodes spaced ~111 m apart
func lineGraph(n int) *graph.Graph {
	g := graph.New()
	for i := 0; i < n; i++ {
		g.AddNode(graph.Node{ID: int64(i + 1), Lat: 38.6000 + float64(i)*0.001, Lon: 34.9000})
	}
	for i := 1; i < n; i++ {
		a := g.Nodes[int64(i)]
		b := g.Nodes[int64(i+1)]
		length := spatial.HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
		geomFwd := []spatial.Point{{Lat: a.Lat, Lon: a.Lon}, {Lat: b.Lat, Lon: b.Lon}}
		geomRev := []spatial.Point{{Lat: b.Lat, Lon: b.Lon}, {Lat: a.Lat, Lon: a.Lon}}
		g.AddEdge(graph.Edge{From: a.ID, To: b.ID, LengthM: length, Geometry: geomFwd})
		g.AddEdge(graph.Edge{From: b.ID, To: a.ID, LengthM: length, Geometry: geomRev})
	}
	return g
}

func TestRouteSegmentOverGraph(t *testing.T) {
	g := lineGraph(5)
	origin := spatial.Point{Lat: 38.6000, Lon: 34.9000}
	dest := spatial.Point{Lat: 38.6040, Lon: 34.9000}

	seg, warnings := RouteSegment(g, origin, dest)

	assert.Empty(t, warnings)
	assert.Equal(t, models.SegmentGraph, seg.Kind)
	require.GreaterOrEqual(t, len(seg.Points), 2)
	assert.Equal(t, origin, seg.Points[0])
	assert.Equal(t, dest, seg.Points[len(seg.Points)-1])
	assert.InDelta(t, 0.445, seg.LengthKm, 0.05)
}

func TestRouteSegmentNilGraph(t *testing.T) {
	origin := spatial.Point{Lat: 38.6310, Lon: 34.9130}
	dest := spatial.Point{Lat: 38.6000, Lon: 34.9000}

	seg, warnings := RouteSegment(nil, origin, dest)

	assert.Empty(t, warnings)
	assert.Equal(t, models.SegmentStraight, seg.Kind)
	assert.Equal(t, []spatial.Point{origin, dest}, seg.Points)
	assert.InDelta(t, spatial.HaversineKm(origin, dest), seg.LengthKm, 1e-9)
}

func TestRouteSegmentSameNearestNode(t *testing.T) {
	g := lineGraph(3)
	// Both waypoints closest to node 1
	origin := spatial.Point{Lat: 38.60001, Lon: 34.90001}
	dest := spatial.Point{Lat: 38.60002, Lon: 34.90002}

	seg, _ := RouteSegment(g, origin, dest)

	assert.Equal(t, models.SegmentGraph, seg.Kind)
	assert.Equal(t, []spatial.Point{origin}, seg.Points)
	assert.Equal(t, 0.0, seg.LengthKm)
}

func TestRouteSegmentDisconnectedFallsBack(t *testing.T) {
	g := lineGraph(3)
	// A second chain to the north with no connection to the first; all three
	// alternative candidate nodes on the destination side are unreachable
	for i := 0; i < 3; i++ {
		g.AddNode(graph.Node{ID: int64(100 + i), Lat: 38.7000 + float64(i)*0.001, Lon: 34.9000})
	}
	for i := 0; i < 2; i++ {
		g.AddEdge(graph.Edge{From: int64(100 + i), To: int64(101 + i), LengthM: 111})
		g.AddEdge(graph.Edge{From: int64(101 + i), To: int64(100 + i), LengthM: 111})
	}

	origin := spatial.Point{Lat: 38.6000, Lon: 34.9000}
	dest := spatial.Point{Lat: 38.7000, Lon: 34.9000}

	seg, warnings := RouteSegment(g, origin, dest)

	assert.Equal(t, models.SegmentStraight, seg.Kind)
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarnNoGraphPath, warnings[0].Code)
	assert.Equal(t, origin, seg.Points[0])
	assert.Equal(t, dest, seg.Points[len(seg.Points)-1])
}

func TestRouteSegmentDistantNodeWarning(t *testing.T) {
	g := lineGraph(3)
	// Origin is over 2 km west of the chain
	origin := spatial.Point{Lat: 38.6000, Lon: 34.8700}
	dest := spatial.Point{Lat: 38.6020, Lon: 34.9000}

	_, warnings := RouteSegment(g, origin, dest)

	require.NotEmpty(t, warnings)
	assert.Equal(t, models.WarnDistantNode, warnings[0].Code)
}

func TestRouteSegmentPinsDistantEndpoints(t *testing.T) {
	g := lineGraph(5)
	// Waypoints offset ~50 m from their nearest nodes
	origin := spatial.Point{Lat: 38.6000, Lon: 34.9006}
	dest := spatial.Point{Lat: 38.6040, Lon: 34.9006}

	seg, _ := RouteSegment(g, origin, dest)

	assert.Equal(t, origin, seg.Points[0])
	assert.Equal(t, dest, seg.Points[len(seg.Points)-1])
	// Length includes the connector stubs
	assert.Greater(t, seg.LengthKm, 0.445)
}
