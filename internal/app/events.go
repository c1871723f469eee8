package app

import "github.com/fitz/taskflow/internal/models"

// EventKind names a controller state change.
type EventKind string

const (
	EventTaskCreated     EventKind = "task_created"
	EventStatusCycled    EventKind = "status_cycled"
	EventViewSelected    EventKind = "view_selected"
	EventDateSelected    EventKind = "date_selected"
	EventMonthChanged    EventKind = "month_changed"
	EventWeekChanged     EventKind = "week_changed"
	EventTimelineChanged EventKind = "timeline_changed"
)

// Event describes a change. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind   `json:"kind"`
	Task models.Task `json:"task,omitzero"`
	View models.View `json:"view,omitempty"`
	Date string      `json:"date,omitempty"`
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. Handlers run synchronously after the change is applied
// and must not block.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) emit(e Event) {
	c.subMu.Lock()
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}
