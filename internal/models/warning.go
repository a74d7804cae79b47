package models

import "github.com/urgupguide/tourism-backend-go/internal/spatial"

// WarningCode identifies a recoverable degradation during planning
type WarningCode string

const (
	WarnNoGraphPath          WarningCode = "no_graph_path"
	WarnGraphUnavailable     WarningCode = "graph_unavailable"
	WarnDistantNode          WarningCode = "distant_node"
	WarnElevationChunkFailed WarningCode = "elevation_chunk_failed"
)

// Warning records a degraded outcome. Warnings are accumulated and returned
// with the result; they are never raised as errors.
type Warning struct {
	Code        WarningCode    `json:"code"`
	Origin      *spatial.Point `json:"origin,omitempty"`
	Destination *spatial.Point `json:"destination,omitempty"`
	Detail      string         `json:"detail,omitempty"`
}
