package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urgupguide/tourism-backend-go/internal/elevation"
	"github.com/urgupguide/tourism-backend-go/internal/graph"
	"github.com/urgupguide/tourism-backend-go/internal/models"
)

// mapDouble serves a single Overpass way running north along the Ürgüp
// meridian, plus requests counting
type mapDouble struct {
	srv      *httptest.Server
	requests int
	status   int
}

func newMapDouble() *mapDouble {
	d := &mapDouble{status: http.StatusOK}
	d.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.requests++
		if d.status != http.StatusOK {
			w.WriteHeader(d.status)
			return
		}
		type geomPoint struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		}
		nodes := make([]int64, 0, 7)
		geometry := make([]geomPoint, 0, 7)
		for i := 0; i < 7; i++ {
			nodes = append(nodes, int64(i+1))
			geometry = append(geometry, geomPoint{Lat: 38.6280 + float64(i)*0.001, Lon: 34.9130})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"elements": []map[string]any{
				{"type": "way", "id": 100, "nodes": nodes, "geometry": geometry},
			},
		})
	}))
	return d
}

// terrainDouble serves a constant elevation for any location batch
type terrainDouble struct {
	srv      *httptest.Server
	requests int
}

func newTerrainDouble(elevationM float64) *terrainDouble {
	d := &terrainDouble{}
	d.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.requests++
		locations := strings.Split(r.URL.Query().Get("locations"), "|")
		results := make([]map[string]float64, len(locations))
		for i := range locations {
			results[i] = map[string]float64{"elevation": elevationM}
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "OK", "results": results})
	}))
	return d
}

func newTestEngine(t *testing.T, maps *mapDouble, terrain *terrainDouble) *Engine {
	t.Helper()
	loader := graph.NewLoader(
		graph.LoaderConfig{ArtifactDir: t.TempDir()},
		graph.NewOverpassClient(maps.srv.URL, 5*time.Second),
	)
	var client *elevation.Client
	if terrain != nil {
		client = elevation.NewClient(terrain.srv.URL, "eudem25m", 5*time.Second, time.Millisecond)
	}
	return NewEngine(loader, elevation.NewSampler(client, elevation.NewCache()))
}

func townWaypoints() []models.Waypoint {
	return []models.Waypoint{
		{ID: "W1", Name: "South Gate", Lat: 38.6280, Lon: 34.9130},
		{ID: "W2", Name: "North Vista", Lat: 38.6340, Lon: 34.9130},
		{ID: "W3", Name: "Town Square", Lat: 38.6310, Lon: 34.9130},
	}
}

func TestPlanEndToEnd(t *testing.T) {
	maps := newMapDouble()
	defer maps.srv.Close()
	terrain := newTerrainDouble(1100)
	defer terrain.srv.Close()
	engine := newTestEngine(t, maps, terrain)

	result, err := engine.Plan(context.Background(), townWaypoints(), models.DefaultPlanOptions())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Warnings)

	require.Len(t, result.OrderedWaypoints, 3)
	ids := map[string]bool{}
	for _, wp := range result.OrderedWaypoints {
		ids[wp.ID] = true
	}
	assert.Len(t, ids, 3)

	// the polyline starts and ends at the ordered endpoints
	require.NotEmpty(t, result.Polyline)
	first := result.OrderedWaypoints[0]
	last := result.OrderedWaypoints[len(result.OrderedWaypoints)-1]
	assert.Equal(t, first.Point(), result.Polyline[0])
	assert.Equal(t, last.Point(), result.Polyline[len(result.Polyline)-1])

	require.NotNil(t, result.Profile)
	assert.Equal(t, models.SourceProvider, result.Profile.Source)
	for _, s := range result.Profile.Samples {
		assert.Equal(t, 1100.0, s.ElevationM)
	}

	assert.Greater(t, result.Metrics.TotalDistanceKm, 0.0)
	assert.Zero(t, result.Metrics.TotalAscentM)
	assert.Equal(t, models.DifficultyVeryEasy, result.Metrics.Difficulty)
	assert.Equal(t, 1, maps.requests)
	assert.Equal(t, 1, terrain.requests)
}

func TestPlanArtifactReuse(t *testing.T) {
	maps := newMapDouble()
	defer maps.srv.Close()
	terrain := newTerrainDouble(1100)
	defer terrain.srv.Close()
	engine := newTestEngine(t, maps, terrain)

	_, err := engine.Plan(context.Background(), townWaypoints(), models.DefaultPlanOptions())
	require.NoError(t, err)
	_, err = engine.Plan(context.Background(), townWaypoints(), models.DefaultPlanOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, maps.requests, "second plan must reuse the on-disk artifact")
}

func TestPlanGraphUnavailableDegrades(t *testing.T) {
	maps := newMapDouble()
	maps.status = http.StatusInternalServerError
	defer maps.srv.Close()
	engine := newTestEngine(t, maps, nil)

	opts := models.DefaultPlanOptions()
	opts.ElevationSource = models.ElevationEstimatorOnly

	result, err := engine.Plan(context.Background(), townWaypoints(), opts)

	require.NoError(t, err)
	require.NotNil(t, result)

	codes := map[models.WarningCode]bool{}
	for _, warning := range result.Warnings {
		codes[warning.Code] = true
	}
	assert.True(t, codes[models.WarnGraphUnavailable], "warnings: %v", result.Warnings)

	require.NotNil(t, result.Profile)
	assert.Equal(t, models.SourceEstimator, result.Profile.Source)
	assert.Greater(t, result.Metrics.TotalDistanceKm, 0.0)
}

func TestPlanInvalidInput(t *testing.T) {
	maps := newMapDouble()
	defer maps.srv.Close()
	engine := newTestEngine(t, maps, nil)

	bad := func(waypoints []models.Waypoint, mutate func(*models.PlanOptions)) string {
		opts := models.DefaultPlanOptions()
		if mutate != nil {
			mutate(&opts)
		}
		result, err := engine.Plan(context.Background(), waypoints, opts)
		require.Error(t, err)
		assert.Nil(t, result)
		var invalid *models.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		return invalid.Field
	}

	assert.Equal(t, "waypoints", bad(nil, nil))
	assert.Equal(t, "waypoints", bad([]models.Waypoint{{ID: "W1", Lat: 95, Lon: 34.9}}, nil))
	assert.Equal(t, "graph_radius_km", bad(townWaypoints(), func(o *models.PlanOptions) { o.GraphRadiusKm = -1 }))
	assert.Equal(t, "resolution_m", bad(townWaypoints(), func(o *models.PlanOptions) { o.ResolutionM = -5 }))
	assert.Equal(t, "graph_region", bad(townWaypoints(), func(o *models.PlanOptions) { o.GraphRegion = "sideways" }))
	assert.Equal(t, "elevation_source", bad(townWaypoints(), func(o *models.PlanOptions) { o.ElevationSource = "psychic" }))

	assert.Zero(t, maps.requests, "validation must reject before any network I/O")
}

func TestPlanSingleWaypoint(t *testing.T) {
	maps := newMapDouble()
	defer maps.srv.Close()
	engine := newTestEngine(t, maps, nil)

	opts := models.DefaultPlanOptions()
	opts.ElevationSource = models.ElevationEstimatorOnly

	result, err := engine.Plan(context.Background(), townWaypoints()[:1], opts)

	require.NoError(t, err)
	require.Len(t, result.Polyline, 1)
	assert.Equal(t, models.DifficultyUnknown, result.Metrics.Difficulty)
	assert.Zero(t, maps.requests, "a single waypoint needs no network")
}

func TestPlanSkipElevation(t *testing.T) {
	maps := newMapDouble()
	defer maps.srv.Close()
	terrain := newTerrainDouble(1100)
	defer terrain.srv.Close()
	engine := newTestEngine(t, maps, terrain)

	opts := models.DefaultPlanOptions()
	opts.ComputeElevation = false

	result, err := engine.Plan(context.Background(), townWaypoints(), opts)

	require.NoError(t, err)
	assert.Nil(t, result.Profile)
	assert.Greater(t, result.Metrics.TotalDistanceKm, 0.0)
	assert.Equal(t, models.DifficultyUnknown, result.Metrics.Difficulty)
	assert.Zero(t, terrain.requests)
}

func TestPlanFixedStartClosedTour(t *testing.T) {
	maps := newMapDouble()
	defer maps.srv.Close()
	engine := newTestEngine(t, maps, nil)

	opts := models.DefaultPlanOptions()
	opts.ElevationSource = models.ElevationEstimatorOnly
	opts.FixedStart = "W3"
	opts.CloseTour = true

	result, err := engine.Plan(context.Background(), townWaypoints(), opts)

	require.NoError(t, err)
	require.Len(t, result.OrderedWaypoints, 4)
	assert.Equal(t, "W3", result.OrderedWaypoints[0].ID)
	assert.Equal(t, "W3", result.OrderedWaypoints[3].ID)
	assert.Equal(t, result.Polyline[0], result.Polyline[len(result.Polyline)-1])
}
