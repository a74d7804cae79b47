package planner

import (
	"context"
	"log"

	"github.com/urgupguide/tourism-backend-go/internal/elevation"
	"github.com/urgupguide/tourism-backend-go/internal/graph"
	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/routing"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// Engine is the single entry point of the route planning and elevation
// pipeline. It owns nothing long-lived: the loader, sampler and caches are
// borrowed at construction and a fully-owned result is returned per call
type Engine struct {
	loader  *graph.Loader
	sampler *elevation.Sampler
}

// NewEngine creates an engine around a network loader and elevation sampler
func NewEngine(loader *graph.Loader, sampler *elevation.Sampler) *Engine {
	return &Engine{loader: loader, sampler: sampler}
}

// Plan runs the linear pipeline: load graph, order waypoints, route and
// stitch segments, sample elevations, derive metrics. Every stage can degrade
// with a warning but only invalid input aborts, synchronously and before any
// I/O
func (e *Engine) Plan(ctx context.Context, waypoints []models.Waypoint, opts models.PlanOptions) (*models.PlanResult, error) {
	opts = normalizeOptions(opts)
	if err := validate(waypoints, opts); err != nil {
		return nil, err
	}

	result := &models.PlanResult{Warnings: []models.Warning{}}

	var g *graph.Graph
	if len(waypoints) >= 2 {
		points := make([]spatial.Point, len(waypoints))
		for i, wp := range waypoints {
			points[i] = wp.Point()
		}
		loaded := e.loader.Load(ctx, points, opts.GraphRegion, opts.GraphRadiusKm, opts.ArtifactPath)
		g = loaded.Graph
		result.Warnings = append(result.Warnings, loaded.Warnings...)
	}

	ordered := waypoints
	if opts.OptimizeOrder {
		ordered = routing.SolveOrder(g, waypoints, opts.FixedStart, opts.CloseTour)
	} else if opts.CloseTour && len(waypoints) >= 2 {
		ordered = append(append([]models.Waypoint{}, waypoints...), waypoints[0])
	}
	result.OrderedWaypoints = ordered

	stitched := routing.Stitch(g, ordered)
	result.Polyline = stitched.Polyline
	result.Warnings = append(result.Warnings, stitched.Warnings...)

	if opts.ComputeElevation {
		profile, warnings := e.sampler.Sample(ctx, stitched.Polyline, ordered, float64(opts.ResolutionM), opts.ElevationSource)
		result.Profile = profile
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Metrics = elevation.ComputeMetrics(result.Profile, stitched.TotalLengthKm)

	log.Printf("[Engine] Planned route: %d waypoints, %.2f km, %d warnings",
		len(ordered), result.Metrics.TotalDistanceKm, len(result.Warnings))
	return result, nil
}

// normalizeOptions fills defaults for zero-valued fields
func normalizeOptions(opts models.PlanOptions) models.PlanOptions {
	if opts.GraphRegion == "" {
		opts.GraphRegion = models.RegionAuto
	}
	if opts.GraphRadiusKm == 0 {
		opts.GraphRadiusKm = graph.DefaultRadiusKm
	}
	if opts.ResolutionM == 0 {
		opts.ResolutionM = int(elevation.DefaultResolutionM)
	}
	if opts.ElevationSource == "" {
		opts.ElevationSource = models.ElevationAuto
	}
	return opts
}

// validate is the single fatal gate. It runs before any I/O
func validate(waypoints []models.Waypoint, opts models.PlanOptions) error {
	if len(waypoints) == 0 {
		return &models.InvalidInputError{Field: "waypoints", Reason: "at least one waypoint is required"}
	}
	for _, wp := range waypoints {
		if err := spatial.ValidateCoordinate(wp.Lat, wp.Lon); err != nil {
			return &models.InvalidInputError{Field: "waypoints", Reason: err.Error()}
		}
	}
	if opts.GraphRadiusKm < 0 {
		return &models.InvalidInputError{Field: "graph_radius_km", Reason: "must be positive"}
	}
	if opts.ResolutionM < 0 {
		return &models.InvalidInputError{Field: "resolution_m", Reason: "must be positive"}
	}
	switch opts.GraphRegion {
	case models.RegionAuto, models.RegionTight, models.RegionWide:
	default:
		return &models.InvalidInputError{Field: "graph_region", Reason: "must be auto, tight or wide"}
	}
	switch opts.ElevationSource {
	case models.ElevationAuto, models.ElevationProviderOnly, models.ElevationEstimatorOnly:
	default:
		return &models.InvalidInputError{Field: "elevation_source", Reason: "must be auto, provider_only or estimator_only"}
	}
	return nil
}
