package gantt

import (
	"fmt"
	"time"

	"github.com/aristath/gantt/internal/events"
	"github.com/aristath/gantt/internal/geometry"
	"github.com/aristath/gantt/internal/interaction"
)

// HitTest returns the task under the point and which part of its bar was hit.
// Bars drawn later win.
func (c *Chart) HitTest(x, y float64) (string, geometry.Handle) {
	for i := len(c.set.Tasks) - 1; i >= 0; i-- {
		id := c.set.Tasks[i].ID
		if h := geometry.HitHandle(c.bars[id], x, y); h != geometry.HandleNone {
			return id, h
		}
	}
	return "", geometry.HandleNone
}

// PointerDown starts a drag on task id from the given handle. The task
// becomes the selection when the session starts.
func (c *Chart) PointerDown(id string, handle geometry.Handle) error {
	var state interaction.State
	switch handle {
	case geometry.HandleBody:
		state = interaction.MovingBar
	case geometry.HandleLeftEdge:
		state = interaction.ResizingLeft
	case geometry.HandleRightEdge:
		state = interaction.ResizingRight
	case geometry.HandleProgress:
		state = interaction.AdjustingProgress
	default:
		return fmt.Errorf("no draggable handle on %q", id)
	}

	if err := c.machine.Begin(state, id); err != nil {
		return err
	}
	c.selected = id
	return nil
}

// PointerMove feeds the pointer's horizontal offset from where the drag
// began. It returns the ids of bars that changed; their connectors are
// already rerouted.
func (c *Chart) PointerMove(dx float64) []string {
	return c.machine.Move(dx)
}

// PointerUp ends the drag, writes committed dates and progress back into the
// task records and publishes one event per committed task.
func (c *Chart) PointerUp() []interaction.Commit {
	commits := c.machine.End()
	stamp := c.now()

	for _, cm := range commits {
		t := c.index[cm.ID]
		switch cm.Kind {
		case interaction.CommitDates:
			c.writeBack(cm.ID, func(i int) {
				c.inputs[i].Start = cm.Start.Format(time.RFC3339)
				c.inputs[i].End = cm.End.Format(time.RFC3339)
			})
			c.publish(events.TopicTask, events.DateChangeEvent{
				ID:        cm.ID,
				Name:      t.Name,
				Start:     cm.Start,
				End:       cm.End,
				Timestamp: stamp,
			})
		case interaction.CommitProgress:
			c.writeBack(cm.ID, func(i int) {
				c.inputs[i].Progress = float64(cm.Progress)
			})
			c.publish(events.TopicTask, events.ProgressChangeEvent{
				ID:        cm.ID,
				Name:      t.Name,
				Progress:  cm.Progress,
				Timestamp: stamp,
			})
		}
	}
	return commits
}

// CancelDrag abandons the active drag and restores every bar it touched.
func (c *Chart) CancelDrag() error {
	return c.machine.Cancel()
}

// Dragging reports whether a drag session is active.
func (c *Chart) Dragging() bool {
	return c.machine.State() != interaction.Idle
}

func (c *Chart) writeBack(id string, fn func(i int)) {
	for i := range c.inputs {
		if c.inputs[i].ID == id {
			fn(i)
			return
		}
	}
}

// Click selects task id and publishes a click. A click within the cooldown
// after a committed drag is the tail of that drag and is ignored.
func (c *Chart) Click(id string) bool {
	t, ok := c.index[id]
	if !ok || c.machine.ActionCompleted() {
		return false
	}

	c.selected = id
	c.publish(events.TopicTask, events.ClickEvent{
		ID:        id,
		Name:      t.Name,
		Timestamp: c.now(),
	})
	return true
}
