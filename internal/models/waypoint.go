package models

import "github.com/urgupguide/tourism-backend-go/internal/spatial"

// Waypoint represents a coordinate the planned route must visit
type Waypoint struct {
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Point returns the waypoint's coordinate
func (w Waypoint) Point() spatial.Point {
	return spatial.Point{Lat: w.Lat, Lon: w.Lon}
}

// SegmentKind describes how a segment between two waypoints was produced
type SegmentKind string

const (
	SegmentGraph    SegmentKind = "graph"    // routed over the road/trail network
	SegmentStraight SegmentKind = "straight" // straight-line fallback
)

// Segment represents the geometry between two consecutive waypoints
type Segment struct {
	Points   []spatial.Point `json:"points"`
	LengthKm float64         `json:"length_km"`
	Kind     SegmentKind     `json:"kind"`
}
