package repository

import (
	"database/sql"
	"fmt"

	"github.com/urgupguide/tourism-backend-go/internal/models"
)

// POIRepository handles database operations for points of interest
type POIRepository struct {
	db *sql.DB
}

// NewPOIRepository creates a new POI repository
func NewPOIRepository(db *sql.DB) *POIRepository {
	return &POIRepository{db: db}
}

// Create inserts a new POI
func (r *POIRepository) Create(poi *models.POI) error {
	query := `
		INSERT INTO pois (name, category, description, latitude, longitude)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(query, poi.Name, poi.Category, poi.Description, poi.Latitude, poi.Longitude)
	if err != nil {
		return fmt.Errorf("failed to create poi: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	poi.ID = id
	return nil
}

// GetByID retrieves a POI by ID. Returns nil when not found
func (r *POIRepository) GetByID(id int64) (*models.POI, error) {
	query := `
		SELECT id, name, category, description, latitude, longitude, created_at, updated_at
		FROM pois WHERE id = ?
	`
	var poi models.POI
	err := r.db.QueryRow(query, id).Scan(
		&poi.ID, &poi.Name, &poi.Category, &poi.Description,
		&poi.Latitude, &poi.Longitude, &poi.CreatedAt, &poi.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poi: %w", err)
	}
	return &poi, nil
}

// GetByIDs retrieves POIs for the given ids, preserving the input order
func (r *POIRepository) GetByIDs(ids []int64) ([]models.POI, error) {
	pois := make([]models.POI, 0, len(ids))
	for _, id := range ids {
		poi, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		if poi == nil {
			return nil, fmt.Errorf("poi %d not found", id)
		}
		pois = append(pois, *poi)
	}
	return pois, nil
}

// List retrieves POIs with filtering and pagination
func (r *POIRepository) List(filter models.POIFilter) ([]models.POI, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM pois"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pois: %w", err)
	}

	query := `
		SELECT id, name, category, description, latitude, longitude, created_at, updated_at
		FROM pois` + where + " ORDER BY name LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query pois: %w", err)
	}
	defer rows.Close()

	var pois []models.POI
	for rows.Next() {
		var poi models.POI
		if err := rows.Scan(
			&poi.ID, &poi.Name, &poi.Category, &poi.Description,
			&poi.Latitude, &poi.Longitude, &poi.CreatedAt, &poi.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan poi: %w", err)
		}
		pois = append(pois, poi)
	}
	return pois, total, rows.Err()
}

// Update modifies an existing POI
func (r *POIRepository) Update(poi *models.POI) error {
	query := `
		UPDATE pois
		SET name = ?, category = ?, description = ?, latitude = ?, longitude = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query, poi.Name, poi.Category, poi.Description, poi.Latitude, poi.Longitude, poi.ID)
	if err != nil {
		return fmt.Errorf("failed to update poi: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("poi %d not found", poi.ID)
	}
	return nil
}

// Delete removes a POI
func (r *POIRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM pois WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete poi: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("poi %d not found", id)
	}
	return nil
}
