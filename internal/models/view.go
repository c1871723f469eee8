package models

// View identifies one of the presentation modes.
type View string

const (
	ViewMonth    View = "month"
	ViewWeek     View = "week"
	ViewTimeline View = "timeline"
)

// DefaultView is used when no valid view was persisted.
const DefaultView = ViewMonth

// ValidViews contains all valid view values in tab order
var ValidViews = []View{
	ViewMonth,
	ViewWeek,
	ViewTimeline,
}

// IsValidView checks if a string names a View
func IsValidView(s string) bool {
	for _, v := range ValidViews {
		if string(v) == s {
			return true
		}
	}
	return false
}

// ParseView returns the View named by s, falling back to DefaultView.
func ParseView(s string) View {
	if IsValidView(s) {
		return View(s)
	}
	return DefaultView
}

// Label returns the tab caption for v.
func (v View) Label() string {
	switch v {
	case ViewWeek:
		return "Week View"
	case ViewTimeline:
		return "Timeline View"
	default:
		return "Month View"
	}
}
