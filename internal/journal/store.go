// Package journal keeps an append-only SQLite log of committed chart edits.
// It records what happened; tasks are never loaded back from it.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/aristath/gantt/internal/events"
)

// Entry is one journaled event.
type Entry struct {
	Seq        int64
	Kind       string // events.EventType* value
	TaskID     string // Empty for view changes
	Name       string
	Start      time.Time // date_change only
	End        time.Time // date_change only
	Progress   int       // progress_change only
	Mode       string    // view_change only
	RecordedAt time.Time
}

// Journal defines the edit log interface.
type Journal interface {
	Record(ctx context.Context, e events.Event) error
	History(ctx context.Context, taskID string) ([]Entry, error)
	Recent(ctx context.Context, n int) ([]Entry, error)
	Close() error
}

// SQLiteStore implements Journal using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the journal at dbPath, creating parent
// directories if needed.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directories: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)
	return open(ctx, connStr)
}

// NewMemoryStore creates an in-memory journal. Each store gets its own
// database; connections of one store share it through the cache.
func NewMemoryStore(ctx context.Context) (*SQLiteStore, error) {
	connStr := fmt.Sprintf("file:journal-%s?mode=memory&cache=shared", uuid.NewString())
	return open(ctx, connStr)
}

func open(ctx context.Context, connStr string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Allow 2 connections: the follower writes while the UI reads history
	db.SetMaxOpenConns(2)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// String renders the entry as one log line.
func (e Entry) String() string {
	stamp := e.RecordedAt.Format("2006-01-02 15:04:05")
	switch e.Kind {
	case events.EventTypeViewChange:
		return fmt.Sprintf("%s  view %s", stamp, e.Mode)
	case events.EventTypeDateChange:
		return fmt.Sprintf("%s  %s  dates %s - %s", stamp, e.Name, e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
	case events.EventTypeProgressChange:
		return fmt.Sprintf("%s  %s  progress %d%%", stamp, e.Name, e.Progress)
	default:
		return fmt.Sprintf("%s  %s  %s", stamp, e.Name, e.Kind)
	}
}
