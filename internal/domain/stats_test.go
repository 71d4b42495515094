package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journey-microservice/internal/domain"
)

func finishedJourney(predicted, actual, distance float64) *domain.Journey {
	j := &domain.Journey{
		PredictedDuration: predicted,
		StartTime:         0,
		Status:            domain.JourneyStatusRunning,
		Distance:          distance,
	}
	j.Complete(actual)
	return j
}

func testBounds() domain.BucketBoundaries {
	return domain.BucketBoundaries{
		DurationShortMax:  300,
		DurationMediumMax: 900,
		DistanceShortMax:  2000,
		DistanceMediumMax: 5000,
	}
}

func TestComputeStatistics(t *testing.T) {
	t.Run("aggregates MAE RMSE MAPE over finished journeys", func(t *testing.T) {
		journeys := []*domain.Journey{
			finishedJourney(100, 120, 1000), // error 20
			finishedJourney(200, 160, 3000), // error 40
		}

		stats := domain.ComputeStatistics(journeys, testBounds())

		assert.Equal(t, 2, stats.TotalJourneys)
		assert.Equal(t, 140.0, stats.AvgDuration)
		assert.Equal(t, 2000.0, stats.AvgDistance)
		assert.Equal(t, 30.0, stats.MAE)
		// sqrt((400+1600)/2) = sqrt(1000)
		assert.InDelta(t, 31.6228, stats.RMSE, 0.001)
		// (20/120 + 40/160)/2 * 100
		assert.InDelta(t, 20.8333, stats.MAPE, 0.001)
	})

	t.Run("running journeys are excluded", func(t *testing.T) {
		journeys := []*domain.Journey{
			finishedJourney(100, 120, 1000),
			{Status: domain.JourneyStatusRunning, PredictedDuration: 300},
		}

		stats := domain.ComputeStatistics(journeys, testBounds())
		assert.Equal(t, 1, stats.TotalJourneys)
	})

	t.Run("buckets use supplied boundaries", func(t *testing.T) {
		journeys := []*domain.Journey{
			finishedJourney(100, 120, 1000),  // short duration, short distance
			finishedJourney(500, 600, 3000),  // medium duration, medium distance
			finishedJourney(900, 1200, 9000), // long duration, long distance
		}

		stats := domain.ComputeStatistics(journeys, testBounds())

		require.Len(t, stats.DurationBuckets, 3)
		require.Len(t, stats.DistanceBuckets, 3)

		for i, bucket := range stats.DurationBuckets {
			assert.Equal(t, 1, bucket.Count, "duration bucket %d", i)
		}
		assert.Equal(t, 20.0, stats.DurationBuckets[0].MAE)
		assert.Equal(t, 100.0, stats.DurationBuckets[1].MAE)
		assert.Equal(t, 300.0, stats.DurationBuckets[2].MAE)

		for i, bucket := range stats.DistanceBuckets {
			assert.Equal(t, 1, bucket.Count, "distance bucket %d", i)
		}

		// Границы не хардкодятся - отражают переданные значения
		assert.Equal(t, 300.0, *stats.DurationBuckets[0].Upper)
		assert.Equal(t, 900.0, *stats.DurationBuckets[1].Upper)
		assert.Nil(t, stats.DurationBuckets[2].Upper)
	})

	t.Run("empty history yields zeroed snapshot", func(t *testing.T) {
		stats := domain.ComputeStatistics(nil, testBounds())

		assert.Equal(t, 0, stats.TotalJourneys)
		assert.Equal(t, 0.0, stats.MAE)
		assert.Equal(t, 0.0, stats.RMSE)
		assert.Equal(t, 0.0, stats.MAPE)
		require.Len(t, stats.DurationBuckets, 3)
	})
}
