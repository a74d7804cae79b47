package models

// POI represents an editorial point of interest
type POI struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Category    string  `json:"category,omitempty" db:"category"`
	Description string  `json:"description,omitempty" db:"description"`
	Latitude    float64 `json:"latitude" db:"latitude"`
	Longitude   float64 `json:"longitude" db:"longitude"`

	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt *string `json:"updatedAt,omitempty" db:"updated_at"`
}

// POIFilter represents filter parameters for querying POIs
type POIFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// POIsResponse represents a paginated response of POIs
type POIsResponse struct {
	Data       []POI `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}
