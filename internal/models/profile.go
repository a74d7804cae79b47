package models

import "time"

// SampleKind describes where an elevation sample comes from on the polyline
type SampleKind string

const (
	SampleWaypoint      SampleKind = "waypoint"       // coincides with an input waypoint
	SampleInterpolated  SampleKind = "interpolated"   // synthesized at a resolution step
	SampleGeometryPoint SampleKind = "geometry_point" // an original polyline vertex
)

// ProfileSource tags the provenance of a profile's elevations
type ProfileSource string

const (
	SourceProvider  ProfileSource = "provider"  // all elevations from the terrain service
	SourceEstimator ProfileSource = "estimator" // all elevations from the regional estimator
	SourceMixed     ProfileSource = "mixed"     // some of each
)

// ElevationSample is a single point of the elevation profile
type ElevationSample struct {
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	DistanceM  float64    `json:"distance_m"`
	ElevationM float64    `json:"elevation_m"`
	Kind       SampleKind `json:"kind"`
	Name       string     `json:"name,omitempty"`
}

// ProfileStats aggregates elevation statistics over a profile
type ProfileStats struct {
	MinElevM      float64 `json:"min_elev_m"`
	MaxElevM      float64 `json:"max_elev_m"`
	AvgElevM      float64 `json:"avg_elev_m"`
	TotalAscentM  int     `json:"total_ascent_m"`
	TotalDescentM int     `json:"total_descent_m"`
}

// ElevationProfile is an ordered set of samples along a polyline.
// Samples are sorted by DistanceM; the first is at 0 and the last at TotalDistanceM.
type ElevationProfile struct {
	Samples        []ElevationSample `json:"samples"`
	Stats          ProfileStats      `json:"stats"`
	ResolutionM    float64           `json:"resolution_m"`
	TotalDistanceM float64           `json:"total_distance_m"`
	Source         ProfileSource     `json:"source"`
	LastUpdated    time.Time         `json:"last_updated"`
}

// Difficulty is a categorical route difficulty rating
type Difficulty string

const (
	DifficultyVeryEasy Difficulty = "very_easy"
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
	DifficultyVeryHard Difficulty = "very_hard"
	DifficultyUnknown  Difficulty = "unknown"
)

// Metrics summarizes a planned route
type Metrics struct {
	TotalDistanceKm float64    `json:"total_distance_km"`
	TotalAscentM    int        `json:"total_ascent_m"`
	TotalDescentM   int        `json:"total_descent_m"`
	MinElevM        float64    `json:"min_elev_m"`
	MaxElevM        float64    `json:"max_elev_m"`
	AvgElevM        float64    `json:"avg_elev_m"`
	Difficulty      Difficulty `json:"difficulty"`
}
