package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// DefaultOverpassURL is the public Overpass API interpreter endpoint
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// OverpassClient downloads road/trail networks from the Overpass API
type OverpassClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewOverpassClient creates a client with the given endpoint and timeout
func NewOverpassClient(baseURL string, timeout time.Duration) *OverpassClient {
	if baseURL == "" {
		baseURL = DefaultOverpassURL
	}
	return &OverpassClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// highwayFilter returns the Overpass highway regex for a network type
func highwayFilter(networkType string) string {
	if networkType == "driving" {
		return `"highway"~"motorway|trunk|primary|secondary|tertiary|unclassified|residential|service|living_street|track"`
	}
	// walking: everything passable on foot
	return `"highway"~"primary|secondary|tertiary|unclassified|residential|service|living_street|track|path|footway|steps|pedestrian|cycleway"`
}

// DownloadRadius fetches the network within radiusKm of center
func (c *OverpassClient) DownloadRadius(ctx context.Context, center spatial.Point, radiusKm float64, networkType string) (*Graph, error) {
	query := fmt.Sprintf("[out:json][timeout:60];way[%s](around:%.0f,%.6f,%.6f);out geom;",
		highwayFilter(networkType), radiusKm*1000, center.Lat, center.Lon)
	return c.download(ctx, query)
}

// DownloadBBox fetches the network within the bounding box
func (c *OverpassClient) DownloadBBox(ctx context.Context, box spatial.BBox, networkType string) (*Graph, error) {
	query := fmt.Sprintf("[out:json][timeout:60];way[%s](%.6f,%.6f,%.6f,%.6f);out geom;",
		highwayFilter(networkType), box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)
	return c.download(ctx, query)
}

type overpassResponse struct {
	Elements []struct {
		Type     string  `json:"type"`
		ID       int64   `json:"id"`
		Nodes    []int64 `json:"nodes"`
		Geometry []struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"geometry"`
	} `json:"elements"`
}

func (c *OverpassClient) download(ctx context.Context, query string) (*Graph, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse overpass response: %w", err)
	}

	g := New()
	ways := 0
	for _, el := range parsed.Elements {
		if el.Type != "way" || len(el.Nodes) < 2 || len(el.Nodes) != len(el.Geometry) {
			continue
		}
		ways++
		for i := 0; i < len(el.Nodes)-1; i++ {
			from := Node{ID: el.Nodes[i], Lat: el.Geometry[i].Lat, Lon: el.Geometry[i].Lon}
			to := Node{ID: el.Nodes[i+1], Lat: el.Geometry[i+1].Lat, Lon: el.Geometry[i+1].Lon}
			g.AddNode(from)
			g.AddNode(to)

			length := spatial.HaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon)
			geomFwd := []spatial.Point{{Lat: from.Lat, Lon: from.Lon}, {Lat: to.Lat, Lon: to.Lon}}
			geomRev := []spatial.Point{{Lat: to.Lat, Lon: to.Lon}, {Lat: from.Lat, Lon: from.Lon}}

			// Roads and trails are traversable both ways for touring purposes
			g.AddEdge(Edge{From: from.ID, To: to.ID, LengthM: length, Geometry: geomFwd})
			g.AddEdge(Edge{From: to.ID, To: from.ID, LengthM: length, Geometry: geomRev})
		}
	}

	log.Printf("[Overpass] Downloaded network: %d ways, %d nodes", ways, g.NodeCount())
	return g, nil
}
