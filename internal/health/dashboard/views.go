package dashboard

import (
	"github.com/2beens/healthdash/internal/health"
	"github.com/2beens/healthdash/internal/health/calendar"
	"github.com/2beens/healthdash/internal/health/session"
	"github.com/2beens/healthdash/internal/health/summary"
)

const (
	// activeMinutesTarget is the fixed daily target of the activity card
	activeMinutesTarget    = 60
	activitiesViewWorkouts = 8
)

// StatCard is a single headline number with its progress towards the daily goal.
// Progress is clamped to [0, 1], unlike the summary ratios.
type StatCard struct {
	Title    string  `json:"title"`
	Value    int     `json:"value"`
	Unit     string  `json:"unit"`
	Goal     int     `json:"goal,omitempty"`
	Progress float64 `json:"progress"`
}

type DashboardPayload struct {
	Date           string               `json:"date"`
	User           health.User          `json:"user"`
	Summary        *health.DailySummary `json:"summary"`
	Cards          []StatCard           `json:"cards"`
	StepsSeries    summary.ChartSeries  `json:"stepsSeries"`
	CaloriesSeries summary.ChartSeries  `json:"caloriesSeries"`
	RecentWorkouts []health.Workout     `json:"recentWorkouts"`
	Nutrition      *health.Nutrition    `json:"nutrition"`
}

type ActivitiesPayload struct {
	StepsSeries         summary.ChartSeries `json:"stepsSeries"`
	ActiveMinutesSeries summary.ChartSeries `json:"activeMinutesSeries"`
	DistanceSeries      summary.ChartSeries `json:"distanceSeries"`
	Workouts            []health.Workout    `json:"workouts"`
}

type NutritionPayload struct {
	Date           string              `json:"date"`
	Nutrition      *health.Nutrition   `json:"nutrition"`
	MacroGrams     int                 `json:"macroGrams"`
	CalorieGoal    int                 `json:"calorieGoal"`
	CaloriesSeries summary.ChartSeries `json:"caloriesSeries"`
}

type CalendarPayload struct {
	Grid     calendar.MonthGrid  `json:"grid"`
	Selected calendar.DayDetails `json:"selected"`
}

type ViewPayload struct {
	// Active is the last navigated view name, Rendered is what is shown for it
	Active   session.View `json:"active"`
	Rendered session.View `json:"rendered"`
}

type RecordsPayload struct {
	User        health.User          `json:"user"`
	Dates       []string             `json:"dates"`
	Activities  []health.Activity    `json:"activities"`
	Workouts    []health.Workout     `json:"workouts"`
	Nutrition   []health.Nutrition   `json:"nutrition"`
	WaterIntake []health.WaterIntake `json:"waterIntake"`
}

func BuildDashboard(s *session.Session) DashboardPayload {
	date := s.CurrentDate()
	user := s.User()
	daily := s.DailySummary(date)

	return DashboardPayload{
		Date:           date,
		User:           user,
		Summary:        daily,
		Cards:          StatCards(user, s.ActivityOn(date), s.WaterOn(date), daily),
		StepsSeries:    summary.Series(s.Activities(), summary.MetricSteps),
		CaloriesSeries: summary.Series(s.Activities(), summary.MetricCalories),
		RecentWorkouts: summary.RecentWorkouts(s.Workouts(), summary.DefaultRecentWorkoutsLimit),
		Nutrition:      s.NutritionOn(date),
	}
}

// StatCards builds the steps, activity, calories and water cards.
// Missing records show as zero values with zero progress.
func StatCards(user health.User, activity *health.Activity, water *health.WaterIntake, daily *health.DailySummary) []StatCard {
	var steps, activeMinutes, calories, intake int
	if activity != nil {
		steps = activity.Steps
		activeMinutes = activity.ActiveMinutes
		calories = activity.CaloriesBurned
	}
	if water != nil {
		intake = water.IntakeMl
	}

	var stepsProgress, activeProgress, caloriesProgress, waterProgress float64
	if daily != nil {
		stepsProgress = summary.Clamp01(daily.StepsProgress)
		activeProgress = summary.Clamp01(float64(daily.ActiveMinutes) / activeMinutesTarget)
		caloriesProgress = summary.Clamp01(daily.CalorieProgress)
		waterProgress = summary.Clamp01(daily.WaterProgress)
	}

	return []StatCard{
		{Title: "Steps", Value: steps, Unit: "steps", Goal: user.DailyStepGoal, Progress: stepsProgress},
		{Title: "Activity", Value: activeMinutes, Unit: "min", Goal: activeMinutesTarget, Progress: activeProgress},
		{Title: "Calories Burned", Value: calories, Unit: "kcal", Goal: user.DailyCalorieGoal, Progress: caloriesProgress},
		{Title: "Water", Value: intake, Unit: "ml", Goal: user.DailyWaterGoalMl, Progress: waterProgress},
	}
}

func BuildActivities(s *session.Session) ActivitiesPayload {
	return ActivitiesPayload{
		StepsSeries:         summary.Series(s.Activities(), summary.MetricSteps),
		ActiveMinutesSeries: summary.Series(s.Activities(), summary.MetricActiveMinutes),
		DistanceSeries:      summary.Series(s.Activities(), summary.MetricDistance),
		Workouts:            summary.RecentWorkouts(s.Workouts(), activitiesViewWorkouts),
	}
}

func BuildNutrition(s *session.Session) NutritionPayload {
	date := s.CurrentDate()
	payload := NutritionPayload{
		Date:           date,
		Nutrition:      s.NutritionOn(date),
		CalorieGoal:    s.User().DailyCalorieGoal,
		CaloriesSeries: summary.Series(s.Activities(), summary.MetricCalories),
	}
	if payload.Nutrition != nil {
		payload.MacroGrams = payload.Nutrition.MacroGrams()
	}
	return payload
}

// BuildCalendar lays out the displayed month and the details of the selected day.
func BuildCalendar(s *session.Session) CalendarPayload {
	return CalendarPayload{
		Grid:     s.MonthGrid(s.Calendar().Displayed()),
		Selected: s.DayDetails(s.Calendar().Selected()),
	}
}

func BuildView(s *session.Session) ViewPayload {
	active := s.Navigator().Active()
	return ViewPayload{
		Active:   active,
		Rendered: active.Resolve(),
	}
}

func BuildRecords(s *session.Session) RecordsPayload {
	return RecordsPayload{
		User:        s.User(),
		Dates:       s.Dates(),
		Activities:  s.Activities(),
		Workouts:    s.Workouts(),
		Nutrition:   s.Nutrition(),
		WaterIntake: s.WaterIntake(),
	}
}
