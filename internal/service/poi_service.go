package service

import (
	"fmt"
	"math"

	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/repository"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// POIService handles business logic for points of interest
type POIService struct {
	poiRepo *repository.POIRepository
}

// NewPOIService creates a new POI service
func NewPOIService(poiRepo *repository.POIRepository) *POIService {
	return &POIService{poiRepo: poiRepo}
}

// ListPOIs retrieves POIs with filtering and pagination
func (s *POIService) ListPOIs(filter models.POIFilter) (*models.POIsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	pois, total, err := s.poiRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pois: %w", err)
	}

	return &models.POIsResponse{
		Data:       pois,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// GetPOI retrieves a single POI by ID
func (s *POIService) GetPOI(id int64) (*models.POI, error) {
	poi, err := s.poiRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get poi: %w", err)
	}
	if poi == nil {
		return nil, fmt.Errorf("poi not found")
	}
	return poi, nil
}

// CreatePOI validates and stores a new POI
func (s *POIService) CreatePOI(poi *models.POI) error {
	if poi.Name == "" {
		return fmt.Errorf("poi name is required")
	}
	if err := spatial.ValidateCoordinate(poi.Latitude, poi.Longitude); err != nil {
		return err
	}
	return s.poiRepo.Create(poi)
}

// UpdatePOI validates and updates an existing POI
func (s *POIService) UpdatePOI(poi *models.POI) error {
	if poi.Name == "" {
		return fmt.Errorf("poi name is required")
	}
	if err := spatial.ValidateCoordinate(poi.Latitude, poi.Longitude); err != nil {
		return err
	}
	return s.poiRepo.Update(poi)
}

// DeletePOI removes a POI
func (s *POIService) DeletePOI(id int64) error {
	return s.poiRepo.Delete(id)
}

// WaypointsForPOIs resolves POI ids into engine waypoints, preserving order
func (s *POIService) WaypointsForPOIs(ids []int64) ([]models.Waypoint, error) {
	pois, err := s.poiRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	waypoints := make([]models.Waypoint, len(pois))
	for i, poi := range pois {
		waypoints[i] = models.Waypoint{
			ID:   fmt.Sprintf("poi-%d", poi.ID),
			Name: poi.Name,
			Lat:  poi.Latitude,
			Lon:  poi.Longitude,
		}
	}
	return waypoints, nil
}
