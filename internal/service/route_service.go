package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/planner"
	"github.com/urgupguide/tourism-backend-go/internal/repository"
)

// RouteService handles business logic for touring routes: planning through
// the engine and persisting the results
type RouteService struct {
	routeRepo  *repository.RouteRepository
	poiService *POIService
	engine     *planner.Engine
}

// NewRouteService creates a new route service
func NewRouteService(routeRepo *repository.RouteRepository, poiService *POIService, engine *planner.Engine) *RouteService {
	return &RouteService{
		routeRepo:  routeRepo,
		poiService: poiService,
		engine:     engine,
	}
}

// Plan runs the route planning engine for the given waypoints
func (s *RouteService) Plan(ctx context.Context, waypoints []models.Waypoint, opts models.PlanOptions) (*models.PlanResult, error) {
	return s.engine.Plan(ctx, waypoints, opts)
}

// PlanForPOIs resolves POI ids into waypoints and plans a route over them
func (s *RouteService) PlanForPOIs(ctx context.Context, poiIDs []int64, opts models.PlanOptions) (*models.PlanResult, error) {
	waypoints, err := s.poiService.WaypointsForPOIs(poiIDs)
	if err != nil {
		return nil, err
	}
	return s.engine.Plan(ctx, waypoints, opts)
}

// CreateRoute plans a route over the POIs and persists it
func (s *RouteService) CreateRoute(ctx context.Context, name, description string, poiIDs []int64, opts models.PlanOptions) (*models.Route, *models.PlanResult, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("route name is required")
	}
	if len(poiIDs) == 0 {
		return nil, nil, fmt.Errorf("at least one poi is required")
	}

	result, err := s.PlanForPOIs(ctx, poiIDs, opts)
	if err != nil {
		return nil, nil, err
	}

	geometry, err := json.Marshal(result.Polyline)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode geometry: %w", err)
	}
	metrics, err := json.Marshal(result.Metrics)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode metrics: %w", err)
	}

	route := &models.Route{
		Name:         name,
		Description:  description,
		POIIDs:       poiIDs,
		GeometryJSON: string(geometry),
		MetricsJSON:  string(metrics),
	}
	if err := s.routeRepo.Create(route); err != nil {
		return nil, nil, err
	}
	return route, result, nil
}

// GetRoute retrieves a stored route by ID
func (s *RouteService) GetRoute(id int64) (*models.Route, error) {
	route, err := s.routeRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	if route == nil {
		return nil, fmt.Errorf("route not found")
	}
	return route, nil
}

// ListRoutes retrieves stored routes with pagination
func (s *RouteService) ListRoutes(page, pageSize int) (*models.RoutesResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}
	if pageSize > 1000 {
		pageSize = 1000
	}

	routes, total, err := s.routeRepo.List(page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	return &models.RoutesResponse{
		Data:       routes,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// DeleteRoute removes a stored route
func (s *RouteService) DeleteRoute(id int64) error {
	return s.routeRepo.Delete(id)
}
