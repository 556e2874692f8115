package timekeeper

import (
	"time"

	"studydesk/internal/core/model"
)

// EventType identifies which timer produced an event.
type EventType string

const (
	EventPomodoro  EventType = "pomodoro"
	EventHydration EventType = "hydration"
)

// Event carries the projection of a timer after a state change.
// Only the snapshot matching Type is populated.
type Event struct {
	Type      EventType
	Pomodoro  model.PomodoroSnapshot
	Hydration model.HydrationSnapshot
	At        time.Time
}
