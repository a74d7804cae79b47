package main

import (
	"log"
	"time"

	"github.com/urgupguide/tourism-backend-go/internal/api"
	"github.com/urgupguide/tourism-backend-go/internal/config"
	"github.com/urgupguide/tourism-backend-go/internal/database"
	"github.com/urgupguide/tourism-backend-go/internal/elevation"
	"github.com/urgupguide/tourism-backend-go/internal/graph"
	"github.com/urgupguide/tourism-backend-go/internal/handler"
	"github.com/urgupguide/tourism-backend-go/internal/planner"
	"github.com/urgupguide/tourism-backend-go/internal/repository"
	"github.com/urgupguide/tourism-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	// Route planning engine
	overpass := graph.NewOverpassClient(cfg.OverpassURL, 60*time.Second)
	loader := graph.NewLoader(graph.LoaderConfig{
		ArtifactDir: cfg.ArtifactDir,
		NetworkType: cfg.NetworkType,
	}, overpass)
	elevClient := elevation.NewClient(cfg.ElevationBaseURL, cfg.ElevationDataset, cfg.ElevationTimeout, cfg.ElevationBackoff)
	sampler := elevation.NewSampler(elevClient, elevation.NewCache())
	engine := planner.NewEngine(loader, sampler)

	// Storage and services
	poiRepo := repository.NewPOIRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	poiService := service.NewPOIService(poiRepo)
	routeService := service.NewRouteService(routeRepo, poiService, engine)

	poiHandler := handler.NewPOIHandler(poiService)
	routeHandler := handler.NewRouteHandler(routeService)

	router := api.SetupRouter(cfg, poiHandler, routeHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
