package models

// Route represents a stored touring route: an ordered set of POIs plus the
// planned geometry and metrics produced by the engine
type Route struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description,omitempty" db:"description"`
	POIIDs       []int64 `json:"poi_ids"`
	GeometryJSON string  `json:"-" db:"geometry"`
	MetricsJSON  string  `json:"-" db:"metrics"`

	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt *string `json:"updatedAt,omitempty" db:"updated_at"`
}

// RoutesResponse represents a paginated response of routes
type RoutesResponse struct {
	Data       []Route `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
