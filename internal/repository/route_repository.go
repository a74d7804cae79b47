package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/urgupguide/tourism-backend-go/internal/models"
)

// RouteRepository handles database operations for stored touring routes
type RouteRepository struct {
	db *sql.DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a new route
func (r *RouteRepository) Create(route *models.Route) error {
	poiIDs, err := json.Marshal(route.POIIDs)
	if err != nil {
		return fmt.Errorf("failed to encode poi ids: %w", err)
	}

	query := `
		INSERT INTO routes (name, description, poi_ids, geometry, metrics)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(query, route.Name, route.Description, string(poiIDs), route.GeometryJSON, route.MetricsJSON)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	route.ID = id
	return nil
}

// GetByID retrieves a route by ID. Returns nil when not found
func (r *RouteRepository) GetByID(id int64) (*models.Route, error) {
	query := `
		SELECT id, name, description, poi_ids, geometry, metrics, created_at, updated_at
		FROM routes WHERE id = ?
	`
	var route models.Route
	var poiIDs string
	err := r.db.QueryRow(query, id).Scan(
		&route.ID, &route.Name, &route.Description, &poiIDs,
		&route.GeometryJSON, &route.MetricsJSON, &route.CreatedAt, &route.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	if err := json.Unmarshal([]byte(poiIDs), &route.POIIDs); err != nil {
		return nil, fmt.Errorf("failed to decode poi ids for route %d: %w", id, err)
	}
	return &route, nil
}

// List retrieves routes with pagination
func (r *RouteRepository) List(page, pageSize int) ([]models.Route, int64, error) {
	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM routes").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	query := `
		SELECT id, name, description, poi_ids, geometry, metrics, created_at, updated_at
		FROM routes ORDER BY name LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var route models.Route
		var poiIDs string
		if err := rows.Scan(
			&route.ID, &route.Name, &route.Description, &poiIDs,
			&route.GeometryJSON, &route.MetricsJSON, &route.CreatedAt, &route.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan route: %w", err)
		}
		if err := json.Unmarshal([]byte(poiIDs), &route.POIIDs); err != nil {
			return nil, 0, fmt.Errorf("failed to decode poi ids for route %d: %w", route.ID, err)
		}
		routes = append(routes, route)
	}
	return routes, total, rows.Err()
}

// Delete removes a route
func (r *RouteRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM routes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("route %d not found", id)
	}
	return nil
}
