package graph

import (
	"context"
	"fmt"
	"log"

	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// Region policy defaults for the Ürgüp deployment
const (
	DefaultRadiusKm    = 10.0
	DistantThresholdKm = 12.0
	CoverageRadiusKm   = 3.0
	MinCoverageRatio   = 0.7
)

// UrgupCenter is the default region center (Ürgüp town square)
var UrgupCenter = spatial.Point{Lat: 38.6310, Lon: 34.9130}

// CappadociaBBox is the wide preset region covering the greater Cappadocia area
var CappadociaBBox = spatial.BBox{MinLat: 38.35, MinLon: 34.55, MaxLat: 38.85, MaxLon: 35.15}

// LoaderConfig holds the loader's region policy and artifact location
type LoaderConfig struct {
	Center      spatial.Point
	RadiusKm    float64
	WideRegion  spatial.BBox
	NetworkType string // "walking" or "driving"
	ArtifactDir string
}

// Loader acquires a road/trail graph covering a waypoint set, either from an
// on-disk artifact or by downloading from the map-data provider
type Loader struct {
	cfg    LoaderConfig
	client *OverpassClient
}

// NewLoader creates a loader. Zero-value config fields fall back to the
// Ürgüp defaults
func NewLoader(cfg LoaderConfig, client *OverpassClient) *Loader {
	if cfg.Center == (spatial.Point{}) {
		cfg.Center = UrgupCenter
	}
	if cfg.RadiusKm <= 0 {
		cfg.RadiusKm = DefaultRadiusKm
	}
	if cfg.WideRegion == (spatial.BBox{}) {
		cfg.WideRegion = CappadociaBBox
	}
	if cfg.NetworkType == "" {
		cfg.NetworkType = "walking"
	}
	return &Loader{cfg: cfg, client: client}
}

// LoadResult carries the loader outcome. Graph is nil when acquisition failed;
// the engine continues with straight-line fallback
type LoadResult struct {
	Graph    *Graph
	Key      ArtifactKey
	Warnings []models.Warning
}

// Load returns a graph covering the waypoints, per the acquisition policy:
// a distant waypoint escalates to the wide preset region; a cached artifact is
// used when it passes the coverage check; otherwise the network is downloaded
// and persisted
func (l *Loader) Load(ctx context.Context, waypoints []spatial.Point, region models.GraphRegion, radiusKm float64, preferredPath string) LoadResult {
	if radiusKm <= 0 {
		radiusKm = l.cfg.RadiusKm
	}

	wide := region == models.RegionWide
	if region == models.RegionAuto {
		for _, wp := range waypoints {
			if spatial.IsDistant(wp, l.cfg.Center, DistantThresholdKm) {
				wide = true
				break
			}
		}
	}

	key := ArtifactKey{Region: "tight", RadiusKm: radiusKm, NetworkType: l.cfg.NetworkType, SchemaVersion: SchemaVersion}
	if wide {
		key = ArtifactKey{Region: "wide", NetworkType: l.cfg.NetworkType, SchemaVersion: SchemaVersion}
	}
	path := ArtifactPath(preferredPath, l.cfg.ArtifactDir, key)

	res := LoadResult{Key: key}

	cached, ok, err := LoadArtifact(key, path)
	if err != nil {
		log.Printf("[Loader] Artifact read failed (%s): %v", path, err)
	}
	if ok {
		if ratio := CoverageRatio(cached, waypoints); ratio >= MinCoverageRatio {
			res.Graph = cached
			return res
		} else {
			log.Printf("[Loader] Cached artifact rejected: coverage %.2f < %.2f", ratio, MinCoverageRatio)
		}
	}

	fresh, err := l.downloadRegion(ctx, wide, radiusKm)
	if err != nil {
		log.Printf("[Loader] Network acquisition failed: %v", err)
		res.Warnings = append(res.Warnings, models.Warning{
			Code:   models.WarnGraphUnavailable,
			Detail: fmt.Sprintf("network acquisition failed: %v", err),
		})
		return res
	}

	if err := SaveArtifact(fresh, key, path); err != nil {
		// A failed persist only costs the next call a re-download
		log.Printf("[Loader] Artifact persist failed (%s): %v", path, err)
	}

	res.Graph = fresh
	return res
}

func (l *Loader) downloadRegion(ctx context.Context, wide bool, radiusKm float64) (*Graph, error) {
	if l.client == nil {
		return nil, fmt.Errorf("no map-data client configured")
	}
	if wide {
		return l.client.DownloadBBox(ctx, l.cfg.WideRegion, l.cfg.NetworkType)
	}
	return l.client.DownloadRadius(ctx, l.cfg.Center, radiusKm, l.cfg.NetworkType)
}

// CoverageRatio is the fraction of waypoints whose nearest graph node lies
// within CoverageRadiusKm ground distance
func CoverageRatio(g *Graph, waypoints []spatial.Point) float64 {
	if len(waypoints) == 0 {
		return 1.0
	}
	covered := 0
	for _, wp := range waypoints {
		if _, distM, ok := g.NearestNode(wp); ok && distM <= CoverageRadiusKm*1000 {
			covered++
		}
	}
	return float64(covered) / float64(len(waypoints))
}
