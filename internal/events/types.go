package events

import (
	"time"
)

// Event is the base interface for all events.
type Event interface {
	EventType() string
	TaskID() string
}

// Topic constants
const (
	TopicView = "view"
	TopicTask = "task"
)

// Event type constants
const (
	EventTypeViewChange     = "view_change"
	EventTypeDateChange     = "date_change"
	EventTypeProgressChange = "progress_change"
	EventTypeClick          = "click"
)

// ViewChangeEvent is published after the chart switches view mode.
type ViewChangeEvent struct {
	Mode      string
	Timestamp time.Time
}

func (e ViewChangeEvent) EventType() string { return EventTypeViewChange }
func (e ViewChangeEvent) TaskID() string    { return "" }

// DateChangeEvent is published when a drag session commits new dates for a task.
type DateChangeEvent struct {
	ID        string
	Name      string
	Start     time.Time
	End       time.Time
	Timestamp time.Time
}

func (e DateChangeEvent) EventType() string { return EventTypeDateChange }
func (e DateChangeEvent) TaskID() string    { return e.ID }

// ProgressChangeEvent is published when a progress drag commits.
type ProgressChangeEvent struct {
	ID        string
	Name      string
	Progress  int
	Timestamp time.Time
}

func (e ProgressChangeEvent) EventType() string { return EventTypeProgressChange }
func (e ProgressChangeEvent) TaskID() string    { return e.ID }

// ClickEvent is published when a bar is clicked outside the post-drag cooldown.
type ClickEvent struct {
	ID        string
	Name      string
	Timestamp time.Time
}

func (e ClickEvent) EventType() string { return EventTypeClick }
func (e ClickEvent) TaskID() string    { return e.ID }
