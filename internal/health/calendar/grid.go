package calendar

import (
	"github.com/2beens/healthdash/internal/health"
)

// DayCell is a single cell of the month grid. Placeholder cells pad the
// start of the grid so the 1st lands in its weekday column; they carry no data.
type DayCell struct {
	Placeholder bool             `json:"placeholder"`
	Day         int              `json:"day,omitempty"`
	Date        string           `json:"date,omitempty"`
	IsToday     bool             `json:"isToday"`
	IsSelected  bool             `json:"isSelected"`
	HasActivity bool             `json:"hasActivity"`
	Workouts    []health.Workout `json:"workouts"`
}

type MonthGrid struct {
	Month Month     `json:"month"`
	Title string    `json:"title"`
	Cells []DayCell `json:"cells"`
}

// BuildMonth lays out month as a grid of FirstWeekday placeholders followed by
// one cell per day. today and selected are yyyy-MM-dd stamps, either may be empty.
func BuildMonth(month Month, today, selected string, idx *Index) MonthGrid {
	leading := int(month.FirstWeekday())
	days := month.Days()

	cells := make([]DayCell, 0, leading+days)
	for i := 0; i < leading; i++ {
		cells = append(cells, DayCell{
			Placeholder: true,
			Workouts:    []health.Workout{},
		})
	}
	for day := 1; day <= days; day++ {
		date := month.DateOf(day)
		cells = append(cells, DayCell{
			Day:         day,
			Date:        date,
			IsToday:     date == today,
			IsSelected:  date == selected,
			HasActivity: idx.HasActivity(date),
			Workouts:    idx.Workouts(date),
		})
	}

	return MonthGrid{
		Month: month,
		Title: month.String(),
		Cells: cells,
	}
}
