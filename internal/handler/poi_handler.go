package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/service"
	"github.com/urgupguide/tourism-backend-go/pkg/response"
)

// POIHandler handles HTTP requests for points of interest
type POIHandler struct {
	poiService *service.POIService
}

// NewPOIHandler creates a new POI handler
func NewPOIHandler(poiService *service.POIService) *POIHandler {
	return &POIHandler{poiService: poiService}
}

// ListPOIs handles GET /api/v1/pois
func (h *POIHandler) ListPOIs(c *gin.Context) {
	var filter models.POIFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.poiService.ListPOIs(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, result)
}

// GetPOI handles GET /api/v1/pois/:id
func (h *POIHandler) GetPOI(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid POI ID")
		return
	}

	poi, err := h.poiService.GetPOI(id)
	if err != nil {
		response.NotFound(c, "POI not found")
		return
	}
	response.Success(c, poi)
}

// CreatePOI handles POST /api/v1/admin/pois
func (h *POIHandler) CreatePOI(c *gin.Context) {
	var poi models.POI
	if err := c.ShouldBindJSON(&poi); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.poiService.CreatePOI(&poi); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, poi)
}

// UpdatePOI handles PUT /api/v1/admin/pois/:id
func (h *POIHandler) UpdatePOI(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid POI ID")
		return
	}

	var poi models.POI
	if err := c.ShouldBindJSON(&poi); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	poi.ID = id

	if err := h.poiService.UpdatePOI(&poi); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, poi)
}

// DeletePOI handles DELETE /api/v1/admin/pois/:id
func (h *POIHandler) DeletePOI(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid POI ID")
		return
	}

	if err := h.poiService.DeletePOI(id); err != nil {
		response.NotFound(c, "POI not found")
		return
	}
	response.Success(c, nil)
}
