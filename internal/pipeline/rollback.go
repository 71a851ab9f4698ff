package pipeline

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"desknerd/internal/logging"
	"desknerd/internal/operation"
	"desknerd/internal/tactile"
)

// rollbacker undoes the side effects of a failed execution where the
// operation type supports it. Rollback is best effort: its own failure
// is logged and swallowed so the original execution error always wins.
type rollbacker struct {
	files tactile.FileDriver
}

// rollback attempts to undo op's partial side effects. It reports
// whether the undo succeeded; false means the operation stays FAILED.
// Only FILE_OPERATION WRITE is reversible: the written target is
// removed through the same driver that wrote it. All other types
// either have no partial state to undo or cannot be undone safely.
func (r *rollbacker) rollback(op *operation.Operation) bool {
	params, ok := op.Params.(operation.FileParams)
	if !ok || params.Action != operation.FileWrite {
		return false
	}

	log := logging.Get(logging.CategoryPipeline)

	if err := r.files.Delete(params.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Nothing was written; there is nothing to undo.
			return false
		}
		log.Warn("rollback failed, leaving operation failed",
			zap.String("operation_id", op.ID),
			zap.String("path", params.Path),
			zap.Error(err))
		return false
	}
	log.Info("rolled back partial write",
		zap.String("operation_id", op.ID),
		zap.String("path", params.Path))
	return true
}
