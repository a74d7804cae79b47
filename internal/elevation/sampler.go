package elevation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/urgupguide/tourism-backend-go/internal/models"
	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

const (
	// DefaultResolutionM is the target ground distance between samples
	DefaultResolutionM = 10.0

	// Resolution clamp bounds
	MinResolutionM = 1.0
	MaxResolutionM = 1000.0

	// waypointToleranceM marks a sample as a waypoint when it coincides with
	// an input waypoint within this distance
	waypointToleranceM = 0.1

	// distance slack when deciding whether a threshold precedes the final vertex
	epsM = 0.001
)

// ClampResolution bounds a requested resolution to [MinResolutionM, MaxResolutionM]
func ClampResolution(resolutionM float64) float64 {
	if resolutionM < MinResolutionM {
		return MinResolutionM
	}
	if resolutionM > MaxResolutionM {
		return MaxResolutionM
	}
	return resolutionM
}

// Sampler resamples a polyline at a fixed ground resolution and enriches the
// samples with elevations from the terrain provider, the cache, or the
// regional estimator
type Sampler struct {
	Client *Client // nil disables the provider
	Cache  *Cache
}

// NewSampler creates a sampler sharing the given cache
func NewSampler(client *Client, cache *Cache) *Sampler {
	if cache == nil {
		cache = NewCache()
	}
	return &Sampler{Client: client, Cache: cache}
}

// Sample produces the elevation profile of the polyline. Degraded elevation
// acquisition falls back to the regional estimator and is reported through
// warnings, never errors
func (s *Sampler) Sample(ctx context.Context, polyline []spatial.Point, waypoints []models.Waypoint, resolutionM float64, source models.ElevationSource) (*models.ElevationProfile, []models.Warning) {
	resolutionM = ClampResolution(resolutionM)

	samples := resample(polyline, waypoints, resolutionM)

	totalDistanceM := 0.0
	if n := len(samples); n > 0 {
		totalDistanceM = samples[n-1].DistanceM
	}

	profile := &models.ElevationProfile{
		Samples:        samples,
		ResolutionM:    resolutionM,
		TotalDistanceM: totalDistanceM,
		LastUpdated:    time.Now().UTC(),
	}

	warnings := s.fill(ctx, profile, source)
	profile.Stats = ComputeStats(profile.Samples)
	return profile, warnings
}

// resample walks the polyline emitting a sample at distance 0, at every
// multiple of the resolution, and at the final vertex
func resample(polyline []spatial.Point, waypoints []models.Waypoint, resolutionM float64) []models.ElevationSample {
	if len(polyline) == 0 {
		return nil
	}

	samples := []models.ElevationSample{positionSample(polyline[0], 0, models.SampleGeometryPoint, waypoints)}
	if len(polyline) == 1 {
		return samples
	}

	totalM := spatial.PathLength(polyline)
	cum := 0.0
	next := resolutionM

	for i := 1; i < len(polyline); i++ {
		a, b := polyline[i-1], polyline[i]
		segLen := spatial.HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
		if segLen <= 0 {
			continue
		}

		for next <= cum+segLen && next < totalM-epsM {
			t := (next - cum) / segLen
			p := spatial.Interpolate(t, a, b)
			samples = append(samples, positionSample(p, next, models.SampleInterpolated, waypoints))
			next += resolutionM
		}
		cum += segLen
	}

	samples = append(samples, positionSample(polyline[len(polyline)-1], totalM, models.SampleGeometryPoint, waypoints))
	return samples
}

// positionSample builds a sample, upgrading its kind to waypoint when the
// coordinate coincides with an input waypoint
func positionSample(p spatial.Point, distanceM float64, kind models.SampleKind, waypoints []models.Waypoint) models.ElevationSample {
	sample := models.ElevationSample{
		Lat:       p.Lat,
		Lon:       p.Lon,
		DistanceM: distanceM,
		Kind:      kind,
	}
	for _, wp := range waypoints {
		if spatial.SamePoint(p, wp.Point(), waypointToleranceM) {
			sample.Kind = models.SampleWaypoint
			sample.Name = wp.Name
			break
		}
	}
	return sample
}

// fill resolves every sample's elevation. Cache hits count as provider data
// since only successful provider results are written back
func (s *Sampler) fill(ctx context.Context, profile *models.ElevationProfile, source models.ElevationSource) []models.Warning {
	samples := profile.Samples
	if len(samples) == 0 {
		profile.Source = models.SourceProvider
		if source == models.ElevationEstimatorOnly {
			profile.Source = models.SourceEstimator
		}
		return nil
	}

	providerUsed := false
	estimatorUsed := false
	var warnings []models.Warning

	if source == models.ElevationEstimatorOnly || s.Client == nil {
		for i := range samples {
			samples[i].ElevationM = Estimate(samples[i].Lat, samples[i].Lon)
		}
		estimatorUsed = true
	} else {
		// Cache read-through; misses go to the provider in bounded batches
		missKeys := make([]string, 0)
		missCoords := make([]spatial.Point, 0)
		missIndexes := make(map[string][]int)

		for i := range samples {
			key := CacheKey(samples[i].Lat, samples[i].Lon)
			if elev, ok := s.Cache.Get(samples[i].Lat, samples[i].Lon); ok {
				samples[i].ElevationM = elev
				providerUsed = true
				continue
			}
			if _, seen := missIndexes[key]; !seen {
				missKeys = append(missKeys, key)
				missCoords = append(missCoords, spatial.Point{Lat: samples[i].Lat, Lon: samples[i].Lon})
			}
			missIndexes[key] = append(missIndexes[key], i)
		}

		for start := 0; start < len(missCoords); start += MaxBatchSize {
			end := start + MaxBatchSize
			if end > len(missCoords) {
				end = len(missCoords)
			}
			batchCoords := missCoords[start:end]
			batchKeys := missKeys[start:end]

			elevations, err := s.Client.Lookup(ctx, batchCoords)
			if err != nil {
				log.Printf("[Elevation] Batch of %d failed: %v", len(batchCoords), err)
				warnings = append(warnings, models.Warning{
					Code:        models.WarnElevationChunkFailed,
					Origin:      &batchCoords[0],
					Destination: &batchCoords[len(batchCoords)-1],
					Detail:      fmt.Sprintf("elevation batch of %d failed: %v", len(batchCoords), err),
				})
				for j, key := range batchKeys {
					for _, idx := range missIndexes[key] {
						samples[idx].ElevationM = Estimate(batchCoords[j].Lat, batchCoords[j].Lon)
					}
				}
				estimatorUsed = true
				continue
			}

			for j, key := range batchKeys {
				s.Cache.Set(batchCoords[j].Lat, batchCoords[j].Lon, elevations[j])
				for _, idx := range missIndexes[key] {
					samples[idx].ElevationM = elevations[j]
				}
			}
			providerUsed = true
		}
	}

	switch {
	case providerUsed && estimatorUsed:
		profile.Source = models.SourceMixed
	case estimatorUsed:
		profile.Source = models.SourceEstimator
	default:
		profile.Source = models.SourceProvider
	}
	return warnings
}
