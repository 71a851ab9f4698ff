// Package audit records every admission decision and every terminal
// operation outcome. Events always reach the structured log; when a
// database path is configured they are also persisted to SQLite so the
// trail survives process restarts.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"desknerd/internal/logging"
	"desknerd/internal/operation"
)

// Stage identifies which pipeline checkpoint produced the event.
type Stage string

const (
	StageAdmission Stage = "ADMISSION"
	StageTerminal  Stage = "TERMINAL"
)

// Event is one audit record. ErrorCode and ErrorMessage are empty for
// admitted and completed operations.
type Event struct {
	OperationID  string
	Type         operation.Type
	Stage        Stage
	Status       operation.Status
	ErrorCode    operation.ErrorCode
	ErrorMessage string
	StartedAt    time.Time
	CompletedAt  time.Time
	RecordedAt   time.Time
}

// Sink receives audit events. Recording must not fail the operation
// being audited; implementations log their own failures.
type Sink interface {
	Record(ctx context.Context, ev Event)
	Close() error
}

// FromOperation builds a terminal or admission event from an operation
// snapshot.
func FromOperation(op *operation.Operation, stage Stage) Event {
	ev := Event{
		OperationID: op.ID,
		Type:        op.Type,
		Stage:       stage,
		Status:      op.Status,
		StartedAt:   op.StartedAt,
		CompletedAt: op.CompletedAt,
		RecordedAt:  time.Now().UTC(),
	}
	if op.Err != nil {
		ev.ErrorCode = op.Err.Code
		ev.ErrorMessage = op.Err.Message
	}
	return ev
}

// LogSink writes events to the audit log category only.
type LogSink struct{}

// NewLogSink returns a sink backed by the structured logger.
func NewLogSink() *LogSink { return &LogSink{} }

// Record writes the event as a structured log entry.
func (s *LogSink) Record(_ context.Context, ev Event) {
	fields := []zap.Field{
		zap.String("operation_id", ev.OperationID),
		zap.String("type", string(ev.Type)),
		zap.String("stage", string(ev.Stage)),
		zap.String("status", string(ev.Status)),
	}
	if ev.ErrorCode != "" {
		fields = append(fields,
			zap.String("error_code", string(ev.ErrorCode)),
			zap.String("error_message", ev.ErrorMessage))
	}
	if !ev.CompletedAt.IsZero() {
		fields = append(fields, zap.Duration("elapsed", ev.CompletedAt.Sub(ev.StartedAt)))
	}
	logging.Get(logging.CategoryAudit).Info("audit", fields...)
}

// Close is a no-op for the log sink.
func (s *LogSink) Close() error { return nil }
