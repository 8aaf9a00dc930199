package health

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the layout of every date stamp in the records, e.g. 2023-10-01.
// Records are matched by exact string equality on it.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a yyyy-MM-dd date stamp into midnight of that day in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w [%s]: %s", ErrInvalidDate, date, err)
	}
	return t, nil
}

// LookbackWindow returns date stamps of the last days calendar days,
// newest first, starting with the day of now.
func LookbackWindow(now time.Time, days int) []string {
	if days <= 0 {
		return []string{}
	}
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, FormatDate(now.AddDate(0, 0, -i)))
	}
	return dates
}
