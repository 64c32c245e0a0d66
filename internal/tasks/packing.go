package tasks

// PackRows assigns row indices in declaration order. With inline packing a
// task shares the row of the task immediately before it when both belong to
// the same project and the task starts at or after that task's end;
// otherwise (and always when inline is false) it opens a new row.
// Returns the number of rows.
func PackRows(tasks []*Task, inline bool) int {
	row := -1
	var prev *Task

	for _, t := range tasks {
		if inline && prev != nil && t.ProjectID == prev.ProjectID && !t.Start.Before(prev.ExclusiveEnd()) {
			t.Row = row
		} else {
			row++
			t.Row = row
		}
		prev = t
	}

	return row + 1
}
