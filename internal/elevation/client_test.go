package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

func serveElevations(w http.ResponseWriter, r *http.Request, elevation float64) {
	locations := strings.Split(r.URL.Query().Get("locations"), "|")
	results := make([]map[string]float64, len(locations))
	for i := range locations {
		results[i] = map[string]float64{"elevation": elevation}
	}
	json.NewEncoder(w).Encode(map[string]any{"status": "OK", "results": results})
}

func TestLookupEmptyBatch(t *testing.T) {
	c := NewClient("http://invalid.test", "", 0, 0)
	elevations, err := c.Lookup(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, elevations)
}

func TestLookupRejectsOversizedBatch(t *testing.T) {
	c := NewClient("http://invalid.test", "", 0, 0)
	coords := make([]spatial.Point, MaxBatchSize+1)

	_, err := c.Lookup(context.Background(), coords)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestLookupRequestShape(t *testing.T) {
	var gotPath string
	var gotLocations string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLocations = r.URL.Query().Get("locations")
		serveElevations(w, r, 1070)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "eudem25m", time.Second, time.Millisecond)
	coords := []spatial.Point{
		{Lat: 38.6310, Lon: 34.9130},
		{Lat: 38.6431, Lon: 34.8289},
	}

	elevations, err := c.Lookup(context.Background(), coords)

	require.NoError(t, err)
	assert.Equal(t, "/v1/eudem25m", gotPath)
	assert.Equal(t, "38.63100,34.91300|38.64310,34.82890", gotLocations)
	assert.Equal(t, []float64{1070, 1070}, elevations)
}

func TestLookupRetriesOnceAfterRateLimit(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		serveElevations(w, r, 1100)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, 50*time.Millisecond)
	sleeps := 0
	c.sleep = func(d time.Duration) {
		sleeps++
		assert.Equal(t, 50*time.Millisecond, d)
	}

	elevations, err := c.Lookup(context.Background(), []spatial.Point{{Lat: 38.63, Lon: 34.91}})

	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	assert.Equal(t, 1, sleeps)
	assert.Equal(t, []float64{1100}, elevations)
}

func TestLookupGivesUpAfterSecondRateLimit(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, time.Millisecond)
	sleeps := 0
	c.sleep = func(time.Duration) { sleeps++ }

	_, err := c.Lookup(context.Background(), []spatial.Point{{Lat: 38.63, Lon: 34.91}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Equal(t, 2, requests)
	assert.Equal(t, 1, sleeps)
}

func TestLookupRejectsResultCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "OK",
			"results": []map[string]float64{{"elevation": 1100}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, time.Millisecond)
	coords := []spatial.Point{{Lat: 38.63, Lon: 34.91}, {Lat: 38.64, Lon: 34.83}}

	_, err := c.Lookup(context.Background(), coords)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 locations")
}

func TestLookupRejectsNullElevation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","results":[{"elevation":null}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, time.Millisecond)

	_, err := c.Lookup(context.Background(), []spatial.Point{{Lat: 38.63, Lon: 34.91}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "null elevation")
}
