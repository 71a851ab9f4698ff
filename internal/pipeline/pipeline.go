// Package pipeline sequences an operation through authorization,
// admission, execution, and rollback, tracking its lifecycle from
// submission to a terminal state. Submission is synchronous: the caller
// gets the terminal snapshot back.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"desknerd/internal/admission"
	"desknerd/internal/audit"
	"desknerd/internal/logging"
	"desknerd/internal/operation"
)

// Sampler exposes the resource monitor's on-demand state snapshot.
type Sampler interface {
	Sample() operation.SystemState
}

// Pipeline is the operation execution pipeline.
type Pipeline struct {
	authorizer Authorizer
	validator  *admission.Validator
	tracker    *Tracker
	executor   *Executor
	monitor    Sampler
	sink       audit.Sink
	undo       rollbacker
}

// New wires a pipeline. The tracker must be the same instance the
// monitor counts, so admission sees live in-flight numbers.
func New(authorizer Authorizer, validator *admission.Validator, tracker *Tracker,
	executor *Executor, monitor Sampler, sink audit.Sink) *Pipeline {
	return &Pipeline{
		authorizer: authorizer,
		validator:  validator,
		tracker:    tracker,
		executor:   executor,
		monitor:    monitor,
		sink:       sink,
		undo:       rollbacker{files: executor.Files},
	}
}

// State returns the current resource and lifecycle snapshot.
func (p *Pipeline) State() operation.SystemState {
	return p.monitor.Sample()
}

// Submit runs the operation to a terminal state and returns its
// snapshot. The returned error mirrors op.Err for failed operations;
// completed operations return a nil error.
func (p *Pipeline) Submit(ctx context.Context, op *operation.Operation, actor string) (operation.Operation, error) {
	log := logging.Get(logging.CategoryPipeline)

	p.tracker.Enqueue(op)
	// The tracker must not leak entries on any exit path, panics
	// included.
	defer p.tracker.Remove(op.ID)

	log.Info("operation submitted",
		zap.String("operation_id", op.ID),
		zap.String("type", string(op.Type)),
		zap.String("actor", actor))

	// Authorization runs before validation so an unauthorized caller
	// learns nothing about parameter or resource state.
	if !p.authorizer.Authorize(ctx, op, actor) {
		return p.fail(ctx, op, operation.NewError(operation.CodeNotAuthorized, nil,
			"actor %q is not authorized for %s", actor, op.Type))
	}

	res := p.validator.Validate(ctx, op)
	if !res.Valid {
		first := res.First()
		p.sink.Record(ctx, audit.FromOperation(op, audit.StageAdmission))
		return p.fail(ctx, op, operation.NewError(first.Code, nil, "%s", first.Message))
	}
	p.sink.Record(ctx, audit.FromOperation(op, audit.StageAdmission))

	if err := op.Advance(operation.StatusExecuting); err != nil {
		return p.fail(ctx, op, operation.NewError(operation.CodeInvalidOperation, err,
			"cannot begin execution: %v", err))
	}
	p.tracker.Activate(op)

	result, execErr := p.executor.Execute(ctx, op)
	// Leave the active set before the terminal transition; the deferred
	// Remove stays as the panic guard.
	p.tracker.Remove(op.ID)
	if execErr != nil {
		opErr := operation.AsError(execErr)
		if p.undo.rollback(op) {
			op.Err = opErr
			if err := op.Advance(operation.StatusRolledBack); err != nil {
				log.Error("terminal transition failed", zap.Error(err))
			}
			p.sink.Record(ctx, audit.FromOperation(op, audit.StageTerminal))
			log.Warn("operation rolled back",
				zap.String("operation_id", op.ID),
				zap.String("code", string(opErr.Code)),
				zap.String("error", opErr.Message))
			return op.Snapshot(), opErr
		}
		return p.fail(ctx, op, opErr)
	}

	op.Result = result
	if err := op.Advance(operation.StatusCompleted); err != nil {
		return p.fail(ctx, op, operation.NewError(operation.CodeExecution, err,
			"cannot complete: %v", err))
	}
	p.sink.Record(ctx, audit.FromOperation(op, audit.StageTerminal))
	log.Info("operation completed",
		zap.String("operation_id", op.ID),
		zap.Duration("elapsed", op.CompletedAt.Sub(op.StartedAt)))
	return op.Snapshot(), nil
}

// fail moves the operation to FAILED with the given error and records
// the terminal audit event.
func (p *Pipeline) fail(ctx context.Context, op *operation.Operation, opErr *operation.Error) (operation.Operation, error) {
	p.tracker.Remove(op.ID)
	op.Err = opErr
	op.Result = nil
	if err := op.Advance(operation.StatusFailed); err != nil {
		logging.Get(logging.CategoryPipeline).Error("terminal transition failed",
			zap.String("operation_id", op.ID), zap.Error(err))
	}
	p.sink.Record(ctx, audit.FromOperation(op, audit.StageTerminal))
	logging.Get(logging.CategoryPipeline).Warn("operation failed",
		zap.String("operation_id", op.ID),
		zap.String("code", string(opErr.Code)),
		zap.String("error", opErr.Message))
	return op.Snapshot(), opErr
}

// SubmitParams is a convenience wrapper: build the operation from a
// payload and run it.
func (p *Pipeline) SubmitParams(ctx context.Context, params operation.Params, actor string) (operation.Operation, error) {
	if params == nil {
		return operation.Operation{}, fmt.Errorf("operation params are required")
	}
	return p.Submit(ctx, operation.New(params), actor)
}
