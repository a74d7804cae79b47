package routing

import (
	"github.com/urgupguide/tourism-backend-go/internal/graph"
	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// StitchResult is the composed route geometry over all waypoints
type StitchResult struct {
	Polyline      []spatial.Point
	Segments      []models.Segment
	TotalLengthKm float64
	Warnings      []models.Warning
}

// Stitch routes each consecutive waypoint pair and composes the per-segment
// polylines into one continuous geometry. Shared endpoints at segment joins
// are deduplicated within EndpointToleranceM; a genuinely discontinuous join
// keeps both points. A single waypoint yields its own point and length 0
func Stitch(g *graph.Graph, ordered []models.Waypoint) StitchResult {
	var res StitchResult

	if len(ordered) == 0 {
		return res
	}
	if len(ordered) == 1 {
		res.Polyline = []spatial.Point{ordered[0].Point()}
		return res
	}

	for i := 0; i < len(ordered)-1; i++ {
		seg, warnings := RouteSegment(g, ordered[i].Point(), ordered[i+1].Point())
		res.Segments = append(res.Segments, seg)
		res.Warnings = append(res.Warnings, warnings...)
		res.TotalLengthKm += seg.LengthKm

		for _, p := range seg.Points {
			if len(res.Polyline) > 0 &&
				spatial.SamePoint(res.Polyline[len(res.Polyline)-1], p, EndpointToleranceM) {
				continue
			}
			res.Polyline = append(res.Polyline, p)
		}
	}

	return res
}
