package journal

import (
	"context"
)

// initSchema creates the edits table if it doesn't exist. Times are stored
// as RFC 3339 text with nanoseconds.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS edits (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		task_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		start_at TEXT NOT NULL DEFAULT '',
		end_at TEXT NOT NULL DEFAULT '',
		progress INTEGER NOT NULL DEFAULT 0,
		mode TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_edits_task_seq ON edits(task_id, seq);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}
