package summary

import (
	"sort"

	"github.com/2beens/healthdash/internal/health"
)

type Metric string

const (
	MetricSteps         Metric = "steps"
	MetricCalories      Metric = "calories"
	MetricActiveMinutes Metric = "activeMinutes"
	MetricDistance      Metric = "distance"
)

// ParseMetric maps unknown metric names to steps.
func ParseMetric(m string) Metric {
	switch Metric(m) {
	case MetricSteps, MetricCalories, MetricActiveMinutes, MetricDistance:
		return Metric(m)
	default:
		return MetricSteps
	}
}

// Label is the axis label of the metric.
func (m Metric) Label() string {
	switch m {
	case MetricCalories:
		return "Calories"
	case MetricActiveMinutes:
		return "Minutes"
	case MetricDistance:
		return "Distance (km)"
	default:
		return "Steps"
	}
}

type SeriesPoint struct {
	Date string `json:"date"`
	// Label is the short weekday name of the date, e.g. Mon
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type ChartSeries struct {
	Metric Metric        `json:"metric"`
	Label  string        `json:"label"`
	Points []SeriesPoint `json:"points"`
}

// Series builds chart data for metric over activities, oldest first.
// Activities with unparsable dates are skipped.
func Series(activities []health.Activity, metric Metric) ChartSeries {
	metric = ParseMetric(string(metric))
	sorted := make([]health.Activity, len(activities))
	copy(sorted, activities)
	// yyyy-MM-dd sorts the same way as the dates it represents
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	series := ChartSeries{
		Metric: metric,
		Label:  metric.Label(),
		Points: make([]SeriesPoint, 0, len(sorted)),
	}
	for _, a := range sorted {
		day, err := health.ParseDate(a.Date, nil)
		if err != nil {
			continue
		}
		series.Points = append(series.Points, SeriesPoint{
			Date:  a.Date,
			Label: day.Format("Mon"),
			Value: metricValue(a, metric),
		})
	}
	return series
}

func metricValue(a health.Activity, metric Metric) float64 {
	switch metric {
	case MetricCalories:
		return float64(a.CaloriesBurned)
	case MetricActiveMinutes:
		return float64(a.ActiveMinutes)
	case MetricDistance:
		return a.DistanceKm
	default:
		return float64(a.Steps)
	}
}

const DefaultRecentWorkoutsLimit = 4

// RecentWorkouts returns up to limit workouts, newest first. Workouts on the
// same date keep their input order. A non-positive limit means the default.
func RecentWorkouts(workouts []health.Workout, limit int) []health.Workout {
	if limit <= 0 {
		limit = DefaultRecentWorkoutsLimit
	}
	sorted := make([]health.Workout, len(workouts))
	copy(sorted, workouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
