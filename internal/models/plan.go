package models

import (
	"fmt"

	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// GraphRegion selects the network loader's region policy
type GraphRegion string

const (
	RegionAuto  GraphRegion = "auto"  // loader decides based on waypoint spread
	RegionTight GraphRegion = "tight" // circular region around the default center
	RegionWide  GraphRegion = "wide"  // wide preset region
)

// ElevationSource selects where elevations may come from
type ElevationSource string

const (
	ElevationAuto          ElevationSource = "auto"           // provider with estimator fallback
	ElevationProviderOnly  ElevationSource = "provider_only"  // no estimator fallback
	ElevationEstimatorOnly ElevationSource = "estimator_only" // never contact the provider
)

// PlanOptions are the tunables of a single plan invocation
type PlanOptions struct {
	GraphRegion      GraphRegion     `json:"graph_region"`
	GraphRadiusKm    float64         `json:"graph_radius_km"`
	ArtifactPath     string          `json:"artifact_path"`
	OptimizeOrder    bool            `json:"optimize_order"`
	FixedStart       string          `json:"fixed_start,omitempty"` // waypoint id
	CloseTour        bool            `json:"close_tour"`
	ResolutionM      int             `json:"resolution_m"`
	ComputeElevation bool            `json:"compute_elevation"`
	ElevationSource  ElevationSource `json:"elevation_source"`
}

// DefaultPlanOptions returns the option defaults
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{
		GraphRegion:      RegionAuto,
		GraphRadiusKm:    10,
		OptimizeOrder:    true,
		CloseTour:        false,
		ResolutionM:      10,
		ComputeElevation: true,
		ElevationSource:  ElevationAuto,
	}
}

// PlanResult is the complete output of one engine call
type PlanResult struct {
	OrderedWaypoints []Waypoint        `json:"ordered_waypoints"`
	Polyline         []spatial.Point   `json:"polyline"`
	Profile          *ElevationProfile `json:"profile,omitempty"`
	Metrics          Metrics           `json:"metrics"`
	Warnings         []Warning         `json:"warnings"`
}

// InvalidInputError is the single fatal error class surfaced before any I/O
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
