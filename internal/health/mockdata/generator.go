package mockdata

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/healthdash/internal/health"

	"github.com/brianvoe/gofakeit/v6"
)

const DefaultLookbackDays = 7

// value ranges of the generated activity and water records, [min, max)
const (
	minSteps, maxSteps                 = 5000, 10000
	minActiveMinutes, maxActiveMinutes = 30, 90
	minCalories, maxCalories           = 200, 500
	minDistanceKm, maxDistanceKm       = 2.0, 5.0
	minWaterMl, maxWaterMl             = 1500, 2500
)

// Dataset is everything a session is built from.
type Dataset struct {
	Dates       []string             `json:"dates"`
	User        health.User          `json:"user"`
	Activities  []health.Activity    `json:"activities"`
	Workouts    []health.Workout     `json:"workouts"`
	Nutrition   []health.Nutrition   `json:"nutrition"`
	WaterIntake []health.WaterIntake `json:"waterIntake"`
}

// Generator produces mock records. All the randomness comes from the faker
// it was created with, so the same seed always yields the same records.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a generator seeded with seed. Seed 0 picks a random seed.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorWithFaker(gofakeit.New(seed))
}

func NewGeneratorWithFaker(faker *gofakeit.Faker) *Generator {
	return &Generator{
		faker: faker,
	}
}

// Generate builds a full dataset for the lookback window of days ending at now.
func (g *Generator) Generate(now time.Time, days int, user health.User) Dataset {
	dates := health.LookbackWindow(now, days)
	return Dataset{
		Dates:       dates,
		User:        user,
		Activities:  g.Activities(dates, user),
		Workouts:    Workouts(now, user),
		Nutrition:   Nutrition(dates, user),
		WaterIntake: g.WaterIntake(dates, user),
	}
}

func (g *Generator) Activities(dates []string, user health.User) []health.Activity {
	activities := make([]health.Activity, 0, len(dates))
	for i, date := range dates {
		activities = append(activities, health.Activity{
			ID:             fmt.Sprintf("activity-%d", i),
			UserID:         user.ID,
			Date:           date,
			Steps:          g.intRange(minSteps, maxSteps),
			ActiveMinutes:  g.intRange(minActiveMinutes, maxActiveMinutes),
			CaloriesBurned: g.intRange(minCalories, maxCalories),
			DistanceKm:     g.distance(),
		})
	}
	return activities
}

func (g *Generator) WaterIntake(dates []string, user health.User) []health.WaterIntake {
	intake := make([]health.WaterIntake, 0, len(dates))
	for i, date := range dates {
		intake = append(intake, health.WaterIntake{
			ID:       fmt.Sprintf("water-%d", i),
			UserID:   user.ID,
			Date:     date,
			IntakeMl: g.intRange(minWaterMl, maxWaterMl),
		})
	}
	return intake
}

// intRange returns a value from [min, max), faker ranges are inclusive on both ends
func (g *Generator) intRange(min, max int) int {
	return g.faker.IntRange(min, max-1)
}

// distance is truncated (not rounded) to one decimal, so 4.96 stays below
// the upper bound as 4.9 instead of becoming 5.0
func (g *Generator) distance() float64 {
	d := g.faker.Float64Range(minDistanceKm, maxDistanceKm)
	return math.Floor(d*10) / 10
}

// Nutrition is not random: every date gets the same four meals.
func Nutrition(dates []string, user health.User) []health.Nutrition {
	nutrition := make([]health.Nutrition, 0, len(dates))
	for i, date := range dates {
		nutrition = append(nutrition, health.NewNutrition(
			fmt.Sprintf("nutrition-%d", i),
			user.ID,
			date,
			dailyMeals(i),
		))
	}
	return nutrition
}

func dailyMeals(i int) []health.Meal {
	return []health.Meal{
		{
			ID:       fmt.Sprintf("meal-%d-1", i),
			Name:     "Breakfast",
			Type:     health.MealTypeBreakfast,
			Calories: 350,
			ProteinG: 20,
			CarbsG:   40,
			FatG:     12,
			Time:     "08:00",
		},
		{
			ID:       fmt.Sprintf("meal-%d-2", i),
			Name:     "Lunch",
			Type:     health.MealTypeLunch,
			Calories: 650,
			ProteinG: 35,
			CarbsG:   65,
			FatG:     22,
			Time:     "13:00",
		},
		{
			ID:       fmt.Sprintf("meal-%d-3", i),
			Name:     "Dinner",
			Type:     health.MealTypeDinner,
			Calories: 580,
			ProteinG: 30,
			CarbsG:   60,
			FatG:     18,
			Time:     "19:00",
		},
		{
			ID:       fmt.Sprintf("meal-%d-4", i),
			Name:     "Snack",
			Type:     health.MealTypeSnack,
			Calories: 200,
			ProteinG: 10,
			CarbsG:   15,
			FatG:     8,
			Time:     "16:00",
		},
	}
}
