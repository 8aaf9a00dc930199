package mockdata_test

import (
	"math"
	"testing"
	"time"

	"github.com/2beens/healthdash/internal/health"
	"github.com/2beens/healthdash/internal/health/mockdata"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2023, time.October, 7, 9, 15, 0, 0, time.UTC)

func TestGenerator_Activities_Ranges(t *testing.T) {
	gen := mockdata.NewGenerator(42)
	user := health.DefaultUser()

	// lots of dates so the whole range gets exercised
	dates := health.LookbackWindow(testNow, 500)
	activities := gen.Activities(dates, user)
	require.Len(t, activities, len(dates))

	for i, a := range activities {
		assert.Equal(t, dates[i], a.Date)
		assert.Equal(t, user.ID, a.UserID)
		assert.GreaterOrEqual(t, a.Steps, 5000)
		assert.Less(t, a.Steps, 10000)
		assert.GreaterOrEqual(t, a.ActiveMinutes, 30)
		assert.Less(t, a.ActiveMinutes, 90)
		assert.GreaterOrEqual(t, a.CaloriesBurned, 200)
		assert.Less(t, a.CaloriesBurned, 500)
		assert.GreaterOrEqual(t, a.DistanceKm, 2.0)
		assert.Less(t, a.DistanceKm, 5.0)
		// one decimal precision
		tenths := a.DistanceKm * 10
		assert.InDelta(t, math.Round(tenths), tenths, 1e-9, "distance %f", a.DistanceKm)
	}
}

func TestGenerator_WaterIntake_Ranges(t *testing.T) {
	gen := mockdata.NewGenerator(7)
	user := health.DefaultUser()

	dates := health.LookbackWindow(testNow, 300)
	intake := gen.WaterIntake(dates, user)
	require.Len(t, intake, len(dates))
	for i, w := range intake {
		assert.Equal(t, dates[i], w.Date)
		assert.GreaterOrEqual(t, w.IntakeMl, 1500)
		assert.Less(t, w.IntakeMl, 2500)
	}
}

func TestGenerator_SameSeedSameRecords(t *testing.T) {
	user := health.DefaultUser()

	ds1 := mockdata.NewGenerator(1234).Generate(testNow, 7, user)
	ds2 := mockdata.NewGeneratorWithFaker(gofakeit.New(1234)).Generate(testNow, 7, user)
	assert.Equal(t, ds1, ds2)

	ds3 := mockdata.NewGenerator(4321).Generate(testNow, 7, user)
	assert.NotEqual(t, ds1.Activities, ds3.Activities)
}

func TestGenerator_Generate(t *testing.T) {
	user := health.DefaultUser()
	ds := mockdata.NewGenerator(99).Generate(testNow, mockdata.DefaultLookbackDays, user)

	assert.Equal(t, user, ds.User)
	require.Len(t, ds.Dates, 7)
	assert.Equal(t, "2023-10-07", ds.Dates[0])
	assert.Equal(t, "2023-10-01", ds.Dates[6])
	assert.Len(t, ds.Activities, 7)
	assert.Len(t, ds.WaterIntake, 7)
	assert.Len(t, ds.Nutrition, 7)
	assert.Len(t, ds.Workouts, 7)

	// at most one activity / water / nutrition record per date
	seen := map[string]bool{}
	for _, a := range ds.Activities {
		assert.False(t, seen[a.Date], "duplicate activity for %s", a.Date)
		seen[a.Date] = true
	}

	assert.Equal(t, "activity-0", ds.Activities[0].ID)
	assert.Equal(t, "water-6", ds.WaterIntake[6].ID)
	assert.Equal(t, "nutrition-3", ds.Nutrition[3].ID)
}

func TestNutrition_FixedMealsSumToTotals(t *testing.T) {
	user := health.DefaultUser()
	dates := health.LookbackWindow(testNow, 7)
	nutrition := mockdata.Nutrition(dates, user)
	require.Len(t, nutrition, 7)

	for i, n := range nutrition {
		assert.Equal(t, dates[i], n.Date)
		require.Len(t, n.Meals, 4)
		assert.Equal(t, 1780, n.TotalCalories)
		assert.Equal(t, 95, n.TotalProteinG)
		assert.Equal(t, 180, n.TotalCarbsG)
		assert.Equal(t, 60, n.TotalFatG)

		var calories, protein, carbs, fat int
		for _, m := range n.Meals {
			assert.True(t, m.Type.IsValid())
			calories += m.Calories
			protein += m.ProteinG
			carbs += m.CarbsG
			fat += m.FatG
		}
		assert.Equal(t, n.TotalCalories, calories)
		assert.Equal(t, n.TotalProteinG, protein)
		assert.Equal(t, n.TotalCarbsG, carbs)
		assert.Equal(t, n.TotalFatG, fat)
	}

	assert.Equal(t, health.MealTypeBreakfast, nutrition[0].Meals[0].Type)
	assert.Equal(t, "08:00", nutrition[0].Meals[0].Time)
	assert.Equal(t, "meal-2-4", nutrition[2].Meals[3].ID)
}

func TestWorkouts_FixedList(t *testing.T) {
	user := health.DefaultUser()
	workouts := mockdata.Workouts(testNow, user)
	require.Len(t, workouts, 7)

	wantDates := []string{
		"2023-10-01", "2023-10-02", "2023-10-03", "2023-10-04",
		"2023-10-21", "2023-10-22", "2023-10-23",
	}
	types := map[health.WorkoutType]bool{}
	for i, w := range workouts {
		assert.Equal(t, wantDates[i], w.Date)
		assert.Equal(t, user.ID, w.UserID)
		assert.True(t, w.Type.IsValid())
		assert.Positive(t, w.DurationMin)
		assert.Positive(t, w.CaloriesBurned)
		types[w.Type] = true
	}
	assert.GreaterOrEqual(t, len(types), 5)

	// past and future relative to the 7th
	assert.Less(t, workouts[0].Date, health.FormatDate(testNow))
	assert.Greater(t, workouts[6].Date, health.FormatDate(testNow))

	december := mockdata.Workouts(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), user)
	assert.Equal(t, "2024-12-01", december[0].Date)
	assert.Equal(t, "2024-12-23", december[6].Date)
}
