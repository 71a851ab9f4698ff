package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"desknerd/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	operation_id  TEXT NOT NULL,
	type          TEXT NOT NULL,
	stage         TEXT NOT NULL,
	status        TEXT NOT NULL,
	error_code    TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	started_at    TEXT NOT NULL DEFAULT '',
	completed_at  TEXT NOT NULL DEFAULT '',
	recorded_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_operation ON audit_events(operation_id);
CREATE INDEX IF NOT EXISTS idx_audit_recorded ON audit_events(recorded_at);
`

// SQLiteSink persists events to a local SQLite database and mirrors
// them to the log sink.
type SQLiteSink struct {
	db  *sql.DB
	log *LogSink
}

// NewSQLiteSink opens (creating if needed) the audit database at path.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	// A single connection sidesteps SQLite writer contention.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply audit schema: %w", err)
	}

	return &SQLiteSink{db: db, log: NewLogSink()}, nil
}

// Record inserts the event; persistence failures are logged, never
// returned to the pipeline.
func (s *SQLiteSink) Record(ctx context.Context, ev Event) {
	s.log.Record(ctx, ev)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events
		 (operation_id, type, stage, status, error_code, error_message, started_at, completed_at, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.OperationID, string(ev.Type), string(ev.Stage), string(ev.Status),
		string(ev.ErrorCode), ev.ErrorMessage,
		formatTime(ev.StartedAt), formatTime(ev.CompletedAt), formatTime(ev.RecordedAt))
	if err != nil {
		logging.Get(logging.CategoryAudit).Error("audit insert failed",
			zap.String("operation_id", ev.OperationID), zap.Error(err))
	}
}

// Close closes the database handle.
func (s *SQLiteSink) Close() error { return s.db.Close() }

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// NewSink selects the sink implementation: SQLite when a database path
// is configured, log-only otherwise.
func NewSink(databasePath string) (Sink, error) {
	if databasePath == "" {
		return NewLogSink(), nil
	}
	return NewSQLiteSink(databasePath)
}
