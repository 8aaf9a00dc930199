package summary

import (
	"math"

	"github.com/2beens/healthdash/internal/health"
)

// Derive computes the daily summary for date from the activity and water
// intake records of that date. Returns nil when either record is missing.
//
// Ratios are value/goal with no clamping. Goals must be positive: a zero goal
// yields +Inf (or NaN for a zero value) and a negative one a negative ratio,
// neither is special-cased here.
func Derive(
	date string,
	user health.User,
	activities []health.Activity,
	waterIntake []health.WaterIntake,
) *health.DailySummary {
	activity := FindActivity(activities, date)
	if activity == nil {
		return nil
	}
	water := FindWaterIntake(waterIntake, date)
	if water == nil {
		return nil
	}

	return &health.DailySummary{
		Date:            date,
		StepsProgress:   Ratio(activity.Steps, user.DailyStepGoal),
		CalorieProgress: Ratio(activity.CaloriesBurned, user.DailyCalorieGoal),
		WaterProgress:   Ratio(water.IntakeMl, user.DailyWaterGoalMl),
		ActiveMinutes:   activity.ActiveMinutes,
	}
}

// Ratio is the goal-progress ratio value/goal, computed in floating point
// so a zero goal never panics.
func Ratio(value, goal int) float64 {
	return float64(value) / float64(goal)
}

// Clamp01 limits a ratio to [0, 1] for progress bars. NaN becomes 0.
func Clamp01(ratio float64) float64 {
	switch {
	case math.IsNaN(ratio):
		return 0
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}

func FindActivity(activities []health.Activity, date string) *health.Activity {
	for i := range activities {
		if activities[i].Date == date {
			return &activities[i]
		}
	}
	return nil
}

func FindWaterIntake(waterIntake []health.WaterIntake, date string) *health.WaterIntake {
	for i := range waterIntake {
		if waterIntake[i].Date == date {
			return &waterIntake[i]
		}
	}
	return nil
}

func FindNutrition(nutrition []health.Nutrition, date string) *health.Nutrition {
	for i := range nutrition {
		if nutrition[i].Date == date {
			return &nutrition[i]
		}
	}
	return nil
}

// FindWorkouts returns all workouts on date, in the order of the input.
func FindWorkouts(workouts []health.Workout, date string) []health.Workout {
	found := []health.Workout{}
	for _, w := range workouts {
		if w.Date == date {
			found = append(found, w)
		}
	}
	return found
}
