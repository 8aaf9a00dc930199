package health

import (
	"encoding/json"
	"math"
)

// User is the single dashboard user, together with the daily goals
// all the progress ratios are computed against.
// Goals are expected to be positive; see summary.Derive for what happens otherwise.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	// HeightCm, WeightKg and Age are optional, zero means not set
	HeightCm int `json:"height,omitempty"`
	WeightKg int `json:"weight,omitempty"`
	Age      int `json:"age,omitempty"`

	DailyStepGoal    int `json:"dailyStepGoal"`
	DailyCalorieGoal int `json:"dailyCalorieGoal"`
	DailyWaterGoalMl int `json:"dailyWaterGoal"`
}

// DefaultUser returns the demo user profile.
func DefaultUser() User {
	return User{
		ID:               "user-1",
		Name:             "Test User",
		Email:            "testUser@example.com",
		Avatar:           "/avatars/user1.jpg",
		HeightCm:         165,
		WeightKg:         62,
		Age:              28,
		DailyStepGoal:    10000,
		DailyCalorieGoal: 2200,
		DailyWaterGoalMl: 2500,
	}
}

// Activity holds the tracked movement for a single day.
// There is at most one Activity per date in a dataset.
type Activity struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Date           string  `json:"date"`
	Steps          int     `json:"steps"`
	ActiveMinutes  int     `json:"activeMinutes"`
	CaloriesBurned int     `json:"caloriesBurned"`
	DistanceKm     float64 `json:"distance"`
}

type Workout struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Date           string      `json:"date"`
	Title          string      `json:"title"`
	Type           WorkoutType `json:"type"`
	DurationMin    int         `json:"duration"`
	CaloriesBurned int         `json:"caloriesBurned"`
	Description    string      `json:"description,omitempty"`
}

// WorkoutType can be one of:
//   - running
//   - walking
//   - cycling
//   - swimming
//   - strength
//   - yoga
//   - hiit
//   - other
type WorkoutType string

const (
	WorkoutTypeRunning  WorkoutType = "running"
	WorkoutTypeWalking  WorkoutType = "walking"
	WorkoutTypeCycling  WorkoutType = "cycling"
	WorkoutTypeSwimming WorkoutType = "swimming"
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeYoga     WorkoutType = "yoga"
	WorkoutTypeHIIT     WorkoutType = "hiit"
	WorkoutTypeOther    WorkoutType = "other"
)

func (wt WorkoutType) String() string {
	return string(wt)
}

func (wt WorkoutType) IsValid() bool {
	switch wt {
	case WorkoutTypeRunning,
		WorkoutTypeWalking,
		WorkoutTypeCycling,
		WorkoutTypeSwimming,
		WorkoutTypeStrength,
		WorkoutTypeYoga,
		WorkoutTypeHIIT,
		WorkoutTypeOther:
		return true
	default:
		return false
	}
}

type WaterIntake struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Date     string `json:"date"`
	IntakeMl int    `json:"intake"`
}

// DailySummary is derived, never stored. Progress values are plain
// value/goal ratios, they are not clamped and may exceed 1.
type DailySummary struct {
	Date            string  `json:"date"`
	StepsProgress   float64 `json:"stepsProgress"`
	CalorieProgress float64 `json:"calorieProgress"`
	WaterProgress   float64 `json:"waterProgress"`
	ActiveMinutes   int     `json:"activeMinutes"`
}

// MarshalJSON writes non-finite ratios (zero or negative goals) as null,
// encoding/json refuses to encode them otherwise.
func (s DailySummary) MarshalJSON() ([]byte, error) {
	type dailySummaryJSON struct {
		Date            string   `json:"date"`
		StepsProgress   *float64 `json:"stepsProgress"`
		CalorieProgress *float64 `json:"calorieProgress"`
		WaterProgress   *float64 `json:"waterProgress"`
		ActiveMinutes   int      `json:"activeMinutes"`
	}
	return json.Marshal(dailySummaryJSON{
		Date:            s.Date,
		StepsProgress:   finiteOrNil(s.StepsProgress),
		CalorieProgress: finiteOrNil(s.CalorieProgress),
		WaterProgress:   finiteOrNil(s.WaterProgress),
		ActiveMinutes:   s.ActiveMinutes,
	})
}

func finiteOrNil(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}
