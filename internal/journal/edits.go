package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/gantt/internal/events"
)

// ErrUnsupportedEvent is returned by Record for events the journal has no
// columns for.
var ErrUnsupportedEvent = errors.New("unsupported event type")

// Record appends e to the journal.
func (s *SQLiteStore) Record(ctx context.Context, e events.Event) error {
	entry, err := entryFor(e)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO edits (kind, task_id, name, start_at, end_at, progress, mode, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Kind, entry.TaskID, entry.Name, formatTime(entry.Start), formatTime(entry.End),
		entry.Progress, entry.Mode, formatTime(entry.RecordedAt))
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", entry.Kind, err)
	}
	return nil
}

func entryFor(e events.Event) (Entry, error) {
	switch ev := e.(type) {
	case events.ViewChangeEvent:
		return Entry{Kind: ev.EventType(), Mode: ev.Mode, RecordedAt: ev.Timestamp}, nil
	case events.DateChangeEvent:
		return Entry{Kind: ev.EventType(), TaskID: ev.ID, Name: ev.Name, Start: ev.Start, End: ev.End, RecordedAt: ev.Timestamp}, nil
	case events.ProgressChangeEvent:
		return Entry{Kind: ev.EventType(), TaskID: ev.ID, Name: ev.Name, Progress: ev.Progress, RecordedAt: ev.Timestamp}, nil
	case events.ClickEvent:
		return Entry{Kind: ev.EventType(), TaskID: ev.ID, Name: ev.Name, RecordedAt: ev.Timestamp}, nil
	default:
		return Entry{}, fmt.Errorf("%w: %T", ErrUnsupportedEvent, e)
	}
}

// History returns every entry for taskID, oldest first.
// Returns empty slice (not nil) if nothing was recorded.
func (s *SQLiteStore) History(ctx context.Context, taskID string) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, task_id, name, start_at, end_at, progress, mode, recorded_at
		FROM edits
		WHERE task_id = ?
		ORDER BY seq ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return scanEntries(rows)
}

// Recent returns the n newest entries across all tasks, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, task_id, name, start_at, end_at, progress, mode, recorded_at
		FROM edits
		ORDER BY seq DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent edits: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e                   Entry
			start, end, stamped string
		)
		if err := rows.Scan(&e.Seq, &e.Kind, &e.TaskID, &e.Name, &start, &end, &e.Progress, &e.Mode, &stamped); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		var err error
		if e.Start, err = parseTime(start); err != nil {
			return nil, err
		}
		if e.End, err = parseTime(end); err != nil {
			return nil, err
		}
		if e.RecordedAt, err = parseTime(stamped); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored time %q: %w", s, err)
	}
	return t, nil
}
