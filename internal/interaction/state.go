// Package interaction drives drag sessions over chart bars: moving, resizing
// and progress adjustment, with snapping, dependency constraints and cascades.
package interaction

import (
	"errors"
	"time"
)

// State is the phase of the interaction machine.
type State int

const (
	Idle              State = iota // No session
	MovingBar                      // Bar and its dependents follow the pointer
	ResizingLeft                   // Left edge follows the pointer
	ResizingRight                  // Right edge follows the pointer
	AdjustingProgress              // Progress handle follows the pointer
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MovingBar:
		return "moving"
	case ResizingLeft:
		return "resizing-left"
	case ResizingRight:
		return "resizing-right"
	case AdjustingProgress:
		return "progress"
	default:
		return "unknown"
	}
}

// Cooldown is how long a finished session suppresses the trailing click.
const Cooldown = 2 * time.Second

// Begin refusals. Hosts may ignore them; the chart simply stays idle.
var (
	ErrSessionActive   = errors.New("interaction: session already active")
	ErrNoSession       = errors.New("interaction: no active session")
	ErrUnknownTask     = errors.New("interaction: unknown task")
	ErrTaskInvalid     = errors.New("interaction: task has no dates")
	ErrSyntheticTask   = errors.New("interaction: task is generated by the chart")
	ErrTaskStarted     = errors.New("interaction: task has progress and its dates are fixed")
	ErrEditingDisabled = errors.New("interaction: editing is disabled")
)

// CommitKind says what a committed session changed.
type CommitKind int

const (
	CommitDates CommitKind = iota
	CommitProgress
)

// Commit is the outcome of a session for one task, already written back
// into the task.
type Commit struct {
	ID       string
	Kind     CommitKind
	Start    time.Time
	End      time.Time
	Progress int
}
