package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/service"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
	"github.com/urgupguide/tourism-backend-go/pkg/response"
)

// RouteHandler handles HTTP requests for route planning and stored routes
type RouteHandler struct {
	routeService *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// PlanOptionsRequest mirrors the engine options; pointer fields distinguish
// "absent" from "false"
type PlanOptionsRequest struct {
	GraphRegion      string  `json:"graph_region"`
	GraphRadiusKm    float64 `json:"graph_radius_km"`
	ArtifactPath     string  `json:"artifact_path"`
	OptimizeOrder    *bool   `json:"optimize_order"`
	FixedStart       string  `json:"fixed_start"`
	CloseTour        *bool   `json:"close_tour"`
	ResolutionM      int     `json:"resolution_m"`
	ComputeElevation *bool   `json:"compute_elevation"`
	ElevationSource  string  `json:"elevation_source"`
}

// PlanRequest is the body of POST /api/v1/plan. Waypoints may be given
// inline or as stored POI ids
type PlanRequest struct {
	Waypoints []models.Waypoint   `json:"waypoints"`
	POIIDs    []int64             `json:"poi_ids"`
	Options   *PlanOptionsRequest `json:"options"`
}

// PlanResponse wraps the engine result with a GeoJSON rendering of the
// geometry for map clients
type PlanResponse struct {
	*models.PlanResult
	Geometry *geojson.Feature `json:"geometry"`
}

func (r *PlanOptionsRequest) apply(opts models.PlanOptions) models.PlanOptions {
	if r == nil {
		return opts
	}
	if r.GraphRegion != "" {
		opts.GraphRegion = models.GraphRegion(r.GraphRegion)
	}
	if r.GraphRadiusKm != 0 {
		opts.GraphRadiusKm = r.GraphRadiusKm
	}
	opts.ArtifactPath = r.ArtifactPath
	if r.OptimizeOrder != nil {
		opts.OptimizeOrder = *r.OptimizeOrder
	}
	opts.FixedStart = r.FixedStart
	if r.CloseTour != nil {
		opts.CloseTour = *r.CloseTour
	}
	if r.ResolutionM != 0 {
		opts.ResolutionM = r.ResolutionM
	}
	if r.ComputeElevation != nil {
		opts.ComputeElevation = *r.ComputeElevation
	}
	if r.ElevationSource != "" {
		opts.ElevationSource = models.ElevationSource(r.ElevationSource)
	}
	return opts
}

// Plan handles POST /api/v1/plan
func (h *RouteHandler) Plan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if len(req.Waypoints) > 0 && len(req.POIIDs) > 0 {
		response.BadRequest(c, "Provide either waypoints or poi_ids, not both")
		return
	}

	opts := req.Options.apply(models.DefaultPlanOptions())

	var result *models.PlanResult
	var err error
	if len(req.POIIDs) > 0 {
		result, err = h.routeService.PlanForPOIs(c.Request.Context(), req.POIIDs, opts)
	} else {
		result, err = h.routeService.Plan(c.Request.Context(), req.Waypoints, opts)
	}
	if err != nil {
		var invalid *models.InvalidInputError
		if errors.As(err, &invalid) {
			response.BadRequest(c, invalid.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, PlanResponse{
		PlanResult: result,
		Geometry:   polylineFeature(result.Polyline),
	})
}

// polylineFeature renders the polyline as a GeoJSON LineString feature.
// GeoJSON positions are lon-first; internal points are lat-first
func polylineFeature(polyline []spatial.Point) *geojson.Feature {
	line := make(orb.LineString, len(polyline))
	for i, p := range polyline {
		line[i] = orb.Point{p.Lon, p.Lat}
	}
	return geojson.NewFeature(line)
}

// GetRoute handles GET /api/v1/routes/:id
func (h *RouteHandler) GetRoute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid route ID")
		return
	}

	route, err := h.routeService.GetRoute(id)
	if err != nil {
		response.NotFound(c, "Route not found")
		return
	}
	response.Success(c, route)
}

// ListRoutes handles GET /api/v1/routes
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "100"))

	result, err := h.routeService.ListRoutes(page, pageSize)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, result)
}

// CreateRouteRequest is the body of POST /api/v1/admin/routes
type CreateRouteRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	POIIDs      []int64             `json:"poi_ids" binding:"required"`
	Options     *PlanOptionsRequest `json:"options"`
}

// CreateRoute handles POST /api/v1/admin/routes
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	opts := req.Options.apply(models.DefaultPlanOptions())

	route, result, err := h.routeService.CreateRoute(c.Request.Context(), req.Name, req.Description, req.POIIDs, opts)
	if err != nil {
		var invalid *models.InvalidInputError
		if errors.As(err, &invalid) {
			response.BadRequest(c, invalid.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Created(c, gin.H{"route": route, "plan": result})
}

// DeleteRoute handles DELETE /api/v1/admin/routes/:id
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid route ID")
		return
	}

	if err := h.routeService.DeleteRoute(id); err != nil {
		response.NotFound(c, "Route not found")
		return
	}
	response.Success(c, nil)
}
