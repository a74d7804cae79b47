package elevation

import (
	"math"

	"github.com/urgupguide/tourism-backend-go/internal/spatial"
)

// Regional estimator bounds for the Cappadocia plateau
const (
	estimatorMinM  = 800.0
	estimatorMaxM  = 1400.0
	regionalMeanM  = 1100.0
	noiseAmplitude = 15.0
)

// estimatorRegion bounds where the anchor table is meaningful; outside it the
// estimator returns the regional mean
var estimatorRegion = spatial.BBox{MinLat: 38.3, MinLon: 34.4, MaxLat: 38.9, MaxLon: 35.3}

// anchor ties a known location to its surveyed elevation
type anchor struct {
	point spatial.Point
	elevM float64
}

// Anchor elevations for the target region
var anchors = []anchor{
	{spatial.Point{Lat: 38.6310, Lon: 34.9130}, 1070}, // Ürgüp
	{spatial.Point{Lat: 38.6431, Lon: 34.8289}, 1090}, // Göreme
	{spatial.Point{Lat: 38.6290, Lon: 34.8049}, 1300}, // Uçhisar
	{spatial.Point{Lat: 38.7150, Lon: 34.8470}, 950},  // Avanos
	{spatial.Point{Lat: 38.6222, Lon: 34.8650}, 1180}, // Ortahisar
	{spatial.Point{Lat: 38.5770, Lon: 34.9540}, 1090}, // Mustafapaşa
}

// Estimate returns a plausible elevation for a coordinate in the region by
// inverse-distance weighting over the anchor table, plus a bounded
// coordinate-derived noise term. Deterministic for identical input; fallback
// use only
func Estimate(lat, lon float64) float64 {
	p := spatial.Point{Lat: lat, Lon: lon}
	if !estimatorRegion.Contains(p) {
		return regionalMeanM
	}

	var weightedSum, weightSum float64
	for _, a := range anchors {
		distM := spatial.HaversineDistance(lat, lon, a.point.Lat, a.point.Lon)
		if distM < 1 {
			return clamp(a.elevM)
		}
		w := 1.0 / (distM * distM)
		weightedSum += w * a.elevM
		weightSum += w
	}

	elev := weightedSum/weightSum + pseudoNoise(lat, lon)
	return clamp(elev)
}

// pseudoNoise derives a bounded, deterministic terrain ripple from the
// coordinate itself
func pseudoNoise(lat, lon float64) float64 {
	v := math.Sin(lat*12345.678)*math.Cos(lon*23456.789) + math.Sin((lat+lon)*3456.78)
	return v / 2.0 * noiseAmplitude
}

func clamp(elev float64) float64 {
	if elev < estimatorMinM {
		return estimatorMinM
	}
	if elev > estimatorMaxM {
		return estimatorMaxM
	}
	return elev
}
