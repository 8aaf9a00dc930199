package mockdata

import (
	"fmt"
	"time"

	"github.com/2beens/healthdash/internal/health"
)

type workoutTemplate struct {
	day         int
	title       string
	workoutType health.WorkoutType
	duration    int
	calories    int
	description string
}

// days 1-4 are the already logged ones, 21-23 are the upcoming ones
var monthlyWorkouts = []workoutTemplate{
	{1, "Morning Run", health.WorkoutTypeRunning, 35, 320, "5K run at the park"},
	{2, "Strength Training", health.WorkoutTypeStrength, 45, 280, "Upper body workout"},
	{3, "Yoga Session", health.WorkoutTypeYoga, 60, 200, "Hatha yoga class"},
	{4, "Cycling", health.WorkoutTypeCycling, 50, 430, "Bike ride on the trail"},
	{21, "HIIT Session", health.WorkoutTypeHIIT, 30, 350, "High intensity interval training"},
	{22, "Evening Walk", health.WorkoutTypeWalking, 40, 180, "Relaxed walk in the park"},
	{23, "Yoga Session", health.WorkoutTypeOther, 50, 220, "Group fitness class at the gym"},
}

// Workouts returns the fixed workout list, dated within the month of now.
func Workouts(now time.Time, user health.User) []health.Workout {
	workouts := make([]health.Workout, 0, len(monthlyWorkouts))
	for i, wt := range monthlyWorkouts {
		workouts = append(workouts, health.Workout{
			ID:             fmt.Sprintf("workout-%d", i+1),
			UserID:         user.ID,
			Date:           fmt.Sprintf("%04d-%02d-%02d", now.Year(), int(now.Month()), wt.day),
			Title:          wt.title,
			Type:           wt.workoutType,
			DurationMin:    wt.duration,
			CaloriesBurned: wt.calories,
			Description:    wt.description,
		})
	}
	return workouts
}
