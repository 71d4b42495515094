package domain

import (
	"math"
	"time"
)

// BucketBoundaries - границы бакетов длительности и дистанции.
// Приходят вместе со снапшотом статистики; агрегатор их не хардкодит.
type BucketBoundaries struct {
	DurationShortMax  float64 `json:"duration_short_max"`
	DurationMediumMax float64 `json:"duration_medium_max"`
	DistanceShortMax  float64 `json:"distance_short_max"`
	DistanceMediumMax float64 `json:"distance_medium_max"`
}

// MetricBucket - бакет (short/medium/long) с количеством поездок и MAE
type MetricBucket struct {
	Label string   `json:"label"`
	Lower float64  `json:"lower"`
	Upper *float64 `json:"upper,omitempty"` // nil для последнего бакета
	Count int      `json:"count"`
	MAE   float64  `json:"mae"`
}

// JourneyStatistics - агрегированные метрики точности предсказаний
type JourneyStatistics struct {
	TotalJourneys   int              `json:"total_journeys"`
	AvgDuration     float64          `json:"avg_duration"`
	AvgDistance     float64          `json:"avg_distance"`
	MAE             float64          `json:"mae"`
	RMSE            float64          `json:"rmse"`
	MAPE            float64          `json:"mape"`
	DurationBuckets []MetricBucket   `json:"duration_buckets"`
	DistanceBuckets []MetricBucket   `json:"distance_buckets"`
	Boundaries      BucketBoundaries `json:"boundaries"`
	LastUpdated     time.Time        `json:"last_updated"`
}

// ComputeStatistics считает агрегаты по завершенным поездкам.
// Незавершенные поездки и поездки без фактической длительности пропускаются.
// Единственная реализация агрегации - и репозиторий, и воркер статистики
// используют её поверх выборки поездок.
func ComputeStatistics(journeys []*Journey, bounds BucketBoundaries) *JourneyStatistics {
	stats := &JourneyStatistics{
		Boundaries:  bounds,
		LastUpdated: time.Now(),
	}

	var (
		sumDuration float64
		sumDistance float64
		sumAbsErr   float64
		sumSqErr    float64
		sumPctErr   float64
		pctCount    int
	)

	durationBuckets := newBuckets(bounds.DurationShortMax, bounds.DurationMediumMax)
	distanceBuckets := newBuckets(bounds.DistanceShortMax, bounds.DistanceMediumMax)
	durationErrSums := make([]float64, 3)
	distanceErrSums := make([]float64, 3)

	for _, j := range journeys {
		if !j.IsFinished() || j.ActualDuration == nil {
			continue
		}
		actual := *j.ActualDuration
		absErr := PredictionAbsError(j.PredictedDuration, actual)

		stats.TotalJourneys++
		sumDuration += actual
		sumDistance += j.Distance
		sumAbsErr += absErr
		sumSqErr += absErr * absErr
		if actual > 0 {
			sumPctErr += absErr / actual * 100
			pctCount++
		}

		di := bucketIndex(actual, bounds.DurationShortMax, bounds.DurationMediumMax)
		durationBuckets[di].Count++
		durationErrSums[di] += absErr

		si := bucketIndex(j.Distance, bounds.DistanceShortMax, bounds.DistanceMediumMax)
		distanceBuckets[si].Count++
		distanceErrSums[si] += absErr
	}

	if stats.TotalJourneys > 0 {
		n := float64(stats.TotalJourneys)
		stats.AvgDuration = sumDuration / n
		stats.AvgDistance = sumDistance / n
		stats.MAE = sumAbsErr / n
		stats.RMSE = math.Sqrt(sumSqErr / n)
	}
	if pctCount > 0 {
		stats.MAPE = sumPctErr / float64(pctCount)
	}

	for i := range durationBuckets {
		if durationBuckets[i].Count > 0 {
			durationBuckets[i].MAE = durationErrSums[i] / float64(durationBuckets[i].Count)
		}
		if distanceBuckets[i].Count > 0 {
			distanceBuckets[i].MAE = distanceErrSums[i] / float64(distanceBuckets[i].Count)
		}
	}

	stats.DurationBuckets = durationBuckets
	stats.DistanceBuckets = distanceBuckets
	return stats
}

func newBuckets(shortMax, mediumMax float64) []MetricBucket {
	return []MetricBucket{
		{Label: "short", Lower: 0, Upper: &shortMax},
		{Label: "medium", Lower: shortMax, Upper: &mediumMax},
		{Label: "long", Lower: mediumMax},
	}
}

func bucketIndex(value, shortMax, mediumMax float64) int {
	switch {
	case value < shortMax:
		return 0
	case value < mediumMax:
		return 1
	default:
		return 2
	}
}
