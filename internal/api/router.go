package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/urgupguide/tourism-backend-go/internal/config"
	"github.com/urgupguide/tourism-backend-go/internal/handler"
	"github.com/urgupguide/tourism-backend-go/internal/middleware"
)

// SetupRouter wires the HTTP routes
func SetupRouter(cfg *config.Config, poiHandler *handler.POIHandler, routeHandler *handler.RouteHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Urgup Tourism API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		api.POST("/plan", routeHandler.Plan)

		pois := api.Group("/pois")
		{
			pois.GET("", poiHandler.ListPOIs)
			pois.GET("/:id", poiHandler.GetPOI)
		}

		routes := api.Group("/routes")
		{
			routes.GET("", routeHandler.ListRoutes)
			routes.GET("/:id", routeHandler.GetRoute)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.JWTSecret))
		{
			admin.POST("/pois", poiHandler.CreatePOI)
			admin.PUT("/pois/:id", poiHandler.UpdatePOI)
			admin.DELETE("/pois/:id", poiHandler.DeletePOI)

			admin.POST("/routes", routeHandler.CreateRoute)
			admin.DELETE("/routes/:id", routeHandler.DeleteRoute)
		}
	}

	return r
}
