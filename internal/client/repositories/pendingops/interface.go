package pendingops

import (
	"context"

	"github.com/avolkov/finsync/internal/client/models"
)

// Repository is the durable pending-operation queue: the recovery log for
// mutations whose remote commit failed. All failures are
// *common.StorageError.
type Repository interface {
	// FetchAll returns the queue in recorded (FIFO) order. Later operations
	// on the same logical transaction may depend on earlier ones having
	// replayed, so callers must never reorder.
	FetchAll(ctx context.Context) ([]models.PendingOperation, error)

	// Save appends an operation to the queue.
	Save(ctx context.Context, op models.PendingOperation) error

	// Delete removes a replayed operation by its id.
	Delete(ctx context.Context, id string) error
}
