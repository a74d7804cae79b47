package routing

import (
	"fmt"

	"github.com/urgupguide/tourism-backend-go/internal/graph"
	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

const (
	// NearNodeWarnKm is the nearest-node distance beyond which a distant_node
	// warning is recorded
	NearNodeWarnKm = 2.0

	// EndpointToleranceM is the tolerance for treating two points as coincident
	EndpointToleranceM = 0.1

	// altCandidates is how many nearest nodes to try per side when the primary
	// node pair is disconnected
	altCandidates = 3
)

// RouteSegment computes the geometry between two waypoints over the graph,
// falling back to a straight line when the graph cannot connect them
func RouteSegment(g *graph.Graph, origin, dest spatial.Point) (models.Segment, []models.Warning) {
	if g == nil || g.NodeCount() == 0 {
		return StraightSegment(origin, dest), nil
	}

	var warnings []models.Warning

	u, uDist, _ := g.NearestNode(origin)
	v, vDist, _ := g.NearestNode(dest)

	if uDist > NearNodeWarnKm*1000 {
		warnings = append(warnings, distantNodeWarning(origin, dest, uDist))
	}
	if vDist > NearNodeWarnKm*1000 {
		warnings = append(warnings, distantNodeWarning(origin, dest, vDist))
	}

	if u.ID == v.ID {
		return models.Segment{Points: []spatial.Point{origin}, LengthKm: 0, Kind: models.SegmentGraph}, warnings
	}

	path, lengthM, err := g.ShortestPath(u.ID, v.ID)
	if err != nil {
		path, lengthM, err = bestAlternativePath(g, origin, dest, u.ID, v.ID)
	}
	if err != nil {
		seg := StraightSegment(origin, dest)
		warnings = append(warnings, models.Warning{
			Code:        models.WarnNoGraphPath,
			Origin:      &origin,
			Destination: &dest,
			Detail:      "no network path between waypoints, using straight line",
		})
		return seg, warnings
	}

	points := assemblePolyline(g, path)
	points, lengthM = pinEndpoints(points, lengthM, origin, dest)

	return models.Segment{Points: points, LengthKm: lengthM / 1000.0, Kind: models.SegmentGraph}, warnings
}

// StraightSegment returns the straight-line fallback between two points
func StraightSegment(origin, dest spatial.Point) models.Segment {
	return models.Segment{
		Points:   []spatial.Point{origin, dest},
		LengthKm: spatial.HaversineKm(origin, dest),
		Kind:     models.SegmentStraight,
	}
}

// bestAlternativePath retries with up to altCandidates nearest nodes on each
// side and picks the shortest successful path
func bestAlternativePath(g *graph.Graph, origin, dest spatial.Point, triedU, triedV int64) ([]int64, float64, error) {
	us := g.KNearestNodes(origin, altCandidates)
	vs := g.KNearestNodes(dest, altCandidates)

	var bestPath []int64
	bestLen := -1.0
	for _, u := range us {
		for _, v := range vs {
			if u.ID == triedU && v.ID == triedV {
				continue
			}
			path, lengthM, err := g.ShortestPath(u.ID, v.ID)
			if err != nil {
				continue
			}
			if bestLen < 0 || lengthM < bestLen {
				bestPath = path
				bestLen = lengthM
			}
		}
	}
	if bestLen < 0 {
		return nil, 0, fmt.Errorf("no path among %dx%d candidate node pairs", len(us), len(vs))
	}
	return bestPath, bestLen, nil
}

// assemblePolyline concatenates per-edge geometries along the node path,
// falling back to node coordinates when an edge has no geometry
func assemblePolyline(g *graph.Graph, path []int64) []spatial.Point {
	var points []spatial.Point
	appendPoint := func(p spatial.Point) {
		if len(points) > 0 && spatial.SamePoint(points[len(points)-1], p, EndpointToleranceM) {
			return
		}
		points = append(points, p)
	}

	for i := 0; i < len(path)-1; i++ {
		edge, ok := g.EdgeBetween(path[i], path[i+1])
		if ok && len(edge.Geometry) > 0 {
			for _, p := range edge.Geometry {
				appendPoint(p)
			}
			continue
		}
		from := g.Nodes[path[i]]
		to := g.Nodes[path[i+1]]
		appendPoint(spatial.Point{Lat: from.Lat, Lon: from.Lon})
		appendPoint(spatial.Point{Lat: to.Lat, Lon: to.Lon})
	}
	if len(points) == 0 && len(path) == 1 {
		n := g.Nodes[path[0]]
		points = append(points, spatial.Point{Lat: n.Lat, Lon: n.Lon})
	}
	return points
}

// pinEndpoints ensures the polyline starts at the exact origin and ends at the
// exact destination, inserting them when the graph endpoints differ by more
// than the tolerance
func pinEndpoints(points []spatial.Point, lengthM float64, origin, dest spatial.Point) ([]spatial.Point, float64) {
	if len(points) == 0 {
		return []spatial.Point{origin, dest}, spatial.HaversineDistance(origin.Lat, origin.Lon, dest.Lat, dest.Lon)
	}

	if spatial.SamePoint(points[0], origin, EndpointToleranceM) {
		points[0] = origin
	} else {
		lengthM += spatial.HaversineDistance(origin.Lat, origin.Lon, points[0].Lat, points[0].Lon)
		points = append([]spatial.Point{origin}, points...)
	}

	last := points[len(points)-1]
	if spatial.SamePoint(last, dest, EndpointToleranceM) {
		points[len(points)-1] = dest
	} else {
		lengthM += spatial.HaversineDistance(last.Lat, last.Lon, dest.Lat, dest.Lon)
		points = append(points, dest)
	}
	return points, lengthM
}

func distantNodeWarning(origin, dest spatial.Point, distM float64) models.Warning {
	return models.Warning{
		Code:        models.WarnDistantNode,
		Origin:      &origin,
		Destination: &dest,
		Detail:      fmt.Sprintf("nearest network node is %.0f m away", distM),
	}
}
