package session

import (
	"sync"

	"github.com/2beens/healthdash/pkg"
)

// View is one of the dashboard sections.
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewActivities View = "activities"
	ViewNutrition  View = "nutrition"
	ViewCalendar   View = "calendar"
	ViewSettings   View = "settings"
)

func (v View) String() string {
	return string(v)
}

func (v View) IsValid() bool {
	switch v {
	case ViewDashboard,
		ViewActivities,
		ViewNutrition,
		ViewCalendar,
		ViewSettings:
		return true
	default:
		return false
	}
}

// Resolve maps unknown views to the dashboard.
func (v View) Resolve() View {
	if v.IsValid() {
		return v
	}
	return ViewDashboard
}

// Navigator tracks the active view. Navigation signals are level triggered,
// only the latest one matters.
type Navigator struct {
	mu     sync.Mutex
	active View
}

func NewNavigator() *Navigator {
	return &Navigator{
		active: ViewDashboard,
	}
}

// Navigate switches to the view named by a URL fragment, with or without
// the leading '#'. An empty fragment keeps the current view.
// Unknown names are stored as they are and render as the dashboard.
func (n *Navigator) Navigate(fragment string) View {
	name := pkg.TrimFragment(fragment)

	n.mu.Lock()
	defer n.mu.Unlock()
	if name != "" {
		n.active = View(name)
	}
	return n.active
}

func (n *Navigator) Active() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}
