package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLoad  EventType = "load"
	EventQuery EventType = "query"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// LoadEvent is emitted once per load attempt, valid or not.
type LoadEvent struct {
	EventBase
	Machine  string    `json:"machine,omitempty"`
	States   int       `json:"states"`
	Alphabet int       `json:"alphabet"`
	Kind     ErrorKind `json:"kind,omitempty"`
	Err      error     `json:"-"`
}

// QueryEvent is emitted once per answered or failed query.
type QueryEvent struct {
	EventBase
	Mode     Mode          `json:"mode"`
	Accepted bool          `json:"accepted"`
	Cached   bool          `json:"cached,omitempty"`
	Kind     ErrorKind     `json:"kind,omitempty"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnLoad  func(context.Context, *LoadEvent)
	OnQuery func(context.Context, *QueryEvent)
}
