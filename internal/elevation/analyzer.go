package elevation

import (
	"math"

	"github.com/urgupguide/tourism-backend-go/internal/models"
)

// Difficulty score thresholds; score = length_km + ascent_m/100
const (
	veryEasyMax = 5.0
	easyMax     = 10.0
	moderateMax = 20.0
	hardMax     = 30.0
)

// ComputeStats aggregates ascent, descent and elevation bounds over the
// sample array. Fewer than 2 samples yield zero ascent/descent
func ComputeStats(samples []models.ElevationSample) models.ProfileStats {
	var stats models.ProfileStats
	if len(samples) == 0 {
		return stats
	}

	minElev := samples[0].ElevationM
	maxElev := samples[0].ElevationM
	var sum, ascent, descent float64

	for i, s := range samples {
		sum += s.ElevationM
		if s.ElevationM < minElev {
			minElev = s.ElevationM
		}
		if s.ElevationM > maxElev {
			maxElev = s.ElevationM
		}
		if i > 0 {
			delta := s.ElevationM - samples[i-1].ElevationM
			if delta > 0 {
				ascent += delta
			} else {
				descent -= delta
			}
		}
	}

	stats.MinElevM = minElev
	stats.MaxElevM = maxElev
	stats.AvgElevM = sum / float64(len(samples))
	stats.TotalAscentM = int(math.Round(ascent))
	stats.TotalDescentM = int(math.Round(descent))
	return stats
}

// ComputeMetrics derives the route metrics from the profile and total length.
// A profile with fewer than 2 samples reports unknown difficulty
func ComputeMetrics(profile *models.ElevationProfile, totalDistanceKm float64) models.Metrics {
	metrics := models.Metrics{
		TotalDistanceKm: math.Round(totalDistanceKm*100) / 100,
		Difficulty:      models.DifficultyUnknown,
	}

	if profile == nil || len(profile.Samples) < 2 {
		return metrics
	}

	stats := profile.Stats
	metrics.TotalAscentM = stats.TotalAscentM
	metrics.TotalDescentM = stats.TotalDescentM
	metrics.MinElevM = stats.MinElevM
	metrics.MaxElevM = stats.MaxElevM
	metrics.AvgElevM = stats.AvgElevM
	metrics.Difficulty = DifficultyFor(totalDistanceKm, float64(stats.TotalAscentM))
	return metrics
}

// DifficultyFor buckets a route by length plus ascent
func DifficultyFor(lengthKm, ascentM float64) models.Difficulty {
	score := lengthKm + ascentM/100
	switch {
	case score < veryEasyMax:
		return models.DifficultyVeryEasy
	case score < easyMax:
		return models.DifficultyEasy
	case score < moderateMax:
		return models.DifficultyModerate
	case score < hardMax:
		return models.DifficultyHard
	default:
		return models.DifficultyVeryHard
	}
}
