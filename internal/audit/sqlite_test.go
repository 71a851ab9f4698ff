package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desknerd/internal/operation"
)

func TestSQLiteSinkPersistsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	sink, err := NewSQLiteSink(path)
	require.NoError(t, err)
	defer sink.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	sink.Record(ctx, Event{
		OperationID: "op-1",
		Type:        operation.TypeCommand,
		Stage:       StageAdmission,
		Status:      operation.StatusValidating,
		RecordedAt:  now,
	})
	sink.Record(ctx, Event{
		OperationID:  "op-1",
		Type:         operation.TypeCommand,
		Stage:        StageTerminal,
		Status:       operation.StatusFailed,
		ErrorCode:    operation.CodeExecution,
		ErrorMessage: "command did not run",
		StartedAt:    now,
		CompletedAt:  now.Add(time.Second),
		RecordedAt:   now.Add(time.Second),
	})

	var count int
	row := sink.db.QueryRow(`SELECT COUNT(*) FROM audit_events WHERE operation_id = ?`, "op-1")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 2, count)

	var stage, code string
	row = sink.db.QueryRow(
		`SELECT stage, error_code FROM audit_events WHERE operation_id = ? AND stage = ?`,
		"op-1", string(StageTerminal))
	require.NoError(t, row.Scan(&stage, &code))
	assert.Equal(t, string(StageTerminal), stage)
	assert.Equal(t, string(operation.CodeExecution), code)
}

func TestSQLiteSinkCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "audit.db")
	sink, err := NewSQLiteSink(path)
	require.NoError(t, err)
	assert.NoError(t, sink.Close())
}

func TestNewSinkSelectsImplementation(t *testing.T) {
	sink, err := NewSink("")
	require.NoError(t, err)
	_, isLog := sink.(*LogSink)
	assert.True(t, isLog)

	sink, err = NewSink(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer sink.Close()
	_, isSQL := sink.(*SQLiteSink)
	assert.True(t, isSQL)
}

func TestFromOperationCapturesError(t *testing.T) {
	op := operation.New(operation.CommandParams{Command: "x"})
	require.NoError(t, op.Advance(operation.StatusExecuting))
	op.Err = operation.NewError(operation.CodeExecution, nil, "boom")
	require.NoError(t, op.Advance(operation.StatusFailed))

	ev := FromOperation(op, StageTerminal)
	assert.Equal(t, op.ID, ev.OperationID)
	assert.Equal(t, operation.StatusFailed, ev.Status)
	assert.Equal(t, operation.CodeExecution, ev.ErrorCode)
	assert.Equal(t, "boom", ev.ErrorMessage)
	assert.False(t, ev.RecordedAt.IsZero())
}

func TestFormatTimeZero(t *testing.T) {
	assert.Equal(t, "", formatTime(time.Time{}))
	assert.NotEqual(t, "", formatTime(time.Now()))
}
