package calendar

import (
	"github.com/2beens/healthdash/internal/health"
	"github.com/2beens/healthdash/internal/health/summary"
)

// DayDetails is what selecting a day yields.
type DayDetails struct {
	Date     string           `json:"date"`
	Activity *health.Activity `json:"activity"`
	// Workouts is never nil, order is not significant
	Workouts []health.Workout `json:"workouts"`
}

// LookupDay scans the record lists for date. O(n) per call, use an Index
// when looking up many days.
func LookupDay(date string, activities []health.Activity, workouts []health.Workout) DayDetails {
	return DayDetails{
		Date:     date,
		Activity: summary.FindActivity(activities, date),
		Workouts: summary.FindWorkouts(workouts, date),
	}
}

// Index maps date stamps to records for O(1) day lookups.
// It keeps pointers into the slices it was built from, which must not change.
type Index struct {
	activities map[string]*health.Activity
	workouts   map[string][]health.Workout
}

func NewIndex(activities []health.Activity, workouts []health.Workout) *Index {
	idx := &Index{
		activities: make(map[string]*health.Activity, len(activities)),
		workouts:   make(map[string][]health.Workout),
	}
	for i := range activities {
		// first one wins, same as the linear lookup
		if _, ok := idx.activities[activities[i].Date]; !ok {
			idx.activities[activities[i].Date] = &activities[i]
		}
	}
	for _, w := range workouts {
		idx.workouts[w.Date] = append(idx.workouts[w.Date], w)
	}
	return idx
}

func (idx *Index) HasActivity(date string) bool {
	_, ok := idx.activities[date]
	return ok
}

func (idx *Index) Activity(date string) *health.Activity {
	return idx.activities[date]
}

// Workouts returns the workouts on date, an empty slice if there are none.
func (idx *Index) Workouts(date string) []health.Workout {
	found := idx.workouts[date]
	if found == nil {
		return []health.Workout{}
	}
	out := make([]health.Workout, len(found))
	copy(out, found)
	return out
}

func (idx *Index) Day(date string) DayDetails {
	return DayDetails{
		Date:     date,
		Activity: idx.Activity(date),
		Workouts: idx.Workouts(date),
	}
}
