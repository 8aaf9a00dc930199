package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/healthdash/internal/health"
	"github.com/2beens/healthdash/internal/health/calendar"
	"github.com/2beens/healthdash/internal/health/mockdata"
	"github.com/2beens/healthdash/internal/health/summary"

	log "github.com/sirupsen/logrus"
)

var ErrNotInitialized = errors.New("health session not initialized")

// Session owns the generated records for the lifetime of the process.
// Records are never modified after New returns; the only mutable parts are
// the current date and the calendar / view cursors.
type Session struct {
	user        health.User
	dates       []string
	activities  []health.Activity
	workouts    []health.Workout
	nutrition   []health.Nutrition
	waterIntake []health.WaterIntake
	index       *calendar.Index

	location    *time.Location
	now         func() time.Time
	generatedAt time.Time

	mu          sync.RWMutex
	currentDate string

	calendar  *calendar.State
	navigator *Navigator
}

type Params struct {
	User         health.User
	Generator    *mockdata.Generator
	LookbackDays int
	// Location is used for "today", defaults to UTC
	Location *time.Location
	// Now defaults to time.Now, tests pin it
	Now func() time.Time
}

func New(params Params) (*Session, error) {
	if params.Generator == nil {
		return nil, errors.New("generator not set")
	}
	if params.LookbackDays <= 0 {
		params.LookbackDays = mockdata.DefaultLookbackDays
	}
	if params.Location == nil {
		params.Location = time.UTC
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	loc := params.Location
	baseNow := params.Now
	now := func() time.Time {
		return baseNow().In(loc)
	}

	if err := CheckGoals(params.User); err != nil {
		// out of contract, ratios will be infinite / undefined
		log.Warnf("session user goals: %s", err)
	}

	generatedAt := now()
	ds := params.Generator.Generate(generatedAt, params.LookbackDays, params.User)
	if len(ds.Dates) == 0 {
		return nil, fmt.Errorf("empty lookback window: %d days", params.LookbackDays)
	}

	log.Debugf("generated session data for [%s - %s]: %d activities, %d workouts",
		ds.Dates[len(ds.Dates)-1], ds.Dates[0], len(ds.Activities), len(ds.Workouts))

	return &Session{
		user:        ds.User,
		dates:       ds.Dates,
		activities:  ds.Activities,
		workouts:    ds.Workouts,
		nutrition:   ds.Nutrition,
		waterIntake: ds.WaterIntake,
		index:       calendar.NewIndex(ds.Activities, ds.Workouts),
		location:    loc,
		now:         now,
		generatedAt: generatedAt,
		currentDate: ds.Dates[0],
		calendar:    calendar.NewState(now),
		navigator:   NewNavigator(),
	}, nil
}

// CheckGoals reports goals that are not positive.
func CheckGoals(user health.User) error {
	var errs []error
	if user.DailyStepGoal <= 0 {
		errs = append(errs, fmt.Errorf("daily step goal not positive: %d", user.DailyStepGoal))
	}
	if user.DailyCalorieGoal <= 0 {
		errs = append(errs, fmt.Errorf("daily calorie goal not positive: %d", user.DailyCalorieGoal))
	}
	if user.DailyWaterGoalMl <= 0 {
		errs = append(errs, fmt.Errorf("daily water goal not positive: %d", user.DailyWaterGoalMl))
	}
	return errors.Join(errs...)
}

func (s *Session) User() health.User {
	return s.user
}

// Dates is the lookback window, newest first.
func (s *Session) Dates() []string {
	return s.dates
}

func (s *Session) Activities() []health.Activity {
	return s.activities
}

func (s *Session) Workouts() []health.Workout {
	return s.workouts
}

func (s *Session) Nutrition() []health.Nutrition {
	return s.nutrition
}

func (s *Session) WaterIntake() []health.WaterIntake {
	return s.waterIntake
}

func (s *Session) Index() *calendar.Index {
	return s.index
}

func (s *Session) Calendar() *calendar.State {
	return s.calendar
}

func (s *Session) Navigator() *Navigator {
	return s.navigator
}

func (s *Session) GeneratedAt() time.Time {
	return s.generatedAt
}

func (s *Session) Location() *time.Location {
	return s.location
}

func (s *Session) Today() string {
	return health.FormatDate(s.now())
}

func (s *Session) CurrentDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentDate
}

// SetCurrentDate changes the date the dashboard shows. Dates without records
// are accepted, lookups for them just come back empty.
func (s *Session) SetCurrentDate(date string) error {
	if _, err := health.ParseDate(date, s.location); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentDate = date
	return nil
}

func (s *Session) ActivityOn(date string) *health.Activity {
	return summary.FindActivity(s.activities, date)
}

func (s *Session) WaterOn(date string) *health.WaterIntake {
	return summary.FindWaterIntake(s.waterIntake, date)
}

func (s *Session) NutritionOn(date string) *health.Nutrition {
	return summary.FindNutrition(s.nutrition, date)
}

func (s *Session) WorkoutsOn(date string) []health.Workout {
	return s.index.Workouts(date)
}

// DailySummary derives the summary for date, nil if the date has no activity or water record.
func (s *Session) DailySummary(date string) *health.DailySummary {
	return summary.Derive(date, s.user, s.activities, s.waterIntake)
}

func (s *Session) CurrentSummary() *health.DailySummary {
	return s.DailySummary(s.CurrentDate())
}

// DayDetails is the calendar selection lookup for date.
func (s *Session) DayDetails(date string) calendar.DayDetails {
	return s.index.Day(date)
}

// MonthGrid builds the calendar grid of month, marking today and the current selection.
func (s *Session) MonthGrid(month calendar.Month) calendar.MonthGrid {
	return calendar.BuildMonth(month, s.Today(), s.calendar.Selected(), s.index)
}

type contextKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or ErrNotInitialized.
func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNotInitialized
	}
	return s, nil
}
