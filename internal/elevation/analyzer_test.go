package elevation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/urgupguide/tourism-backend-go/internal/models"
)

func profileFrom(elevations ...float64) *models.ElevationProfile {
	samples := make([]models.ElevationSample, len(elevations))
	for i, e := range elevations {
		samples[i] = models.ElevationSample{DistanceM: float64(i) * 10, ElevationM: e}
	}
	p := &models.ElevationProfile{Samples: samples}
	p.Stats = ComputeStats(samples)
	return p
}

func TestComputeStats(t *testing.T) {
	p := profileFrom(1000, 1020, 1010, 1050)

	assert.Equal(t, 60, p.Stats.TotalAscentM)
	assert.Equal(t, 10, p.Stats.TotalDescentM)
	assert.Equal(t, 1000.0, p.Stats.MinElevM)
	assert.Equal(t, 1050.0, p.Stats.MaxElevM)
	assert.Equal(t, 1020.0, p.Stats.AvgElevM)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Zero(t, stats.TotalAscentM)
	assert.Zero(t, stats.TotalDescentM)
}

func TestComputeStatsSingleSample(t *testing.T) {
	stats := ComputeStats([]models.ElevationSample{{ElevationM: 1100}})
	assert.Zero(t, stats.TotalAscentM)
	assert.Zero(t, stats.TotalDescentM)
	assert.Equal(t, 1100.0, stats.MinElevM)
	assert.Equal(t, 1100.0, stats.MaxElevM)
}

func TestComputeStatsRoundsToMeters(t *testing.T) {
	stats := ComputeStats([]models.ElevationSample{
		{ElevationM: 1000}, {ElevationM: 1010.6},
	})
	assert.Equal(t, 11, stats.TotalAscentM)
}

func TestComputeMetrics(t *testing.T) {
	p := profileFrom(1000, 1050, 1030)

	metrics := ComputeMetrics(p, 7.456)

	assert.Equal(t, 7.46, metrics.TotalDistanceKm)
	assert.Equal(t, 50, metrics.TotalAscentM)
	assert.Equal(t, 20, metrics.TotalDescentM)
	assert.Equal(t, models.DifficultyEasy, metrics.Difficulty)
}

func TestComputeMetricsTooFewSamples(t *testing.T) {
	assert.Equal(t, models.DifficultyUnknown, ComputeMetrics(nil, 5).Difficulty)
	assert.Equal(t, models.DifficultyUnknown, ComputeMetrics(profileFrom(1100), 5).Difficulty)
}

func TestDifficultyBuckets(t *testing.T) {
	cases := []struct {
		lengthKm float64
		ascentM  float64
		want     models.Difficulty
	}{
		{2, 100, models.DifficultyVeryEasy}, // score 3
		{4, 100, models.DifficultyEasy},     // score 5, boundary
		{7, 200, models.DifficultyEasy},     // score 9
		{8, 400, models.DifficultyModerate}, // score 12
		{15, 900, models.DifficultyHard},    // score 24
		{25, 800, models.DifficultyVeryHard},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DifficultyFor(tc.lengthKm, tc.ascentM),
			"length=%v ascent=%v", tc.lengthKm, tc.ascentM)
	}
}
