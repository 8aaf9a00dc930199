package calendar

import (
	"sync"
	"time"

	"github.com/2beens/healthdash/internal/health"
)

// State holds the two calendar cursors: the selected date and the displayed month.
// They move independently, navigating months never changes the selection and
// selecting a day never changes the displayed month.
type State struct {
	mu        sync.Mutex
	now       func() time.Time
	selected  string
	displayed Month
}

// NewState starts with today selected and the current month displayed.
func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &State{
		now:       now,
		selected:  health.FormatDate(t),
		displayed: MonthOf(t),
	}
}

func (s *State) Today() string {
	return health.FormatDate(s.now())
}

func (s *State) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *State) Displayed() Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayed
}

func (s *State) NextMonth() Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayed = s.displayed.Next()
	return s.displayed
}

func (s *State) PrevMonth() Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayed = s.displayed.Prev()
	return s.displayed
}

// JumpToToday displays the current month, the selection stays as it is.
func (s *State) JumpToToday() Month {
	current := MonthOf(s.now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayed = current
	return s.displayed
}

// Select moves the selection to date, which must be a valid yyyy-MM-dd stamp.
func (s *State) Select(date string) error {
	if _, err := health.ParseDate(date, nil); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = date
	return nil
}
