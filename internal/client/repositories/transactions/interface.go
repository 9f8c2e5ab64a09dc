package transactions

import (
	"context"
	"time"

	"github.com/avolkov/finsync/internal/client/models"
)

// Repository is the durable store for transactions. Writes are committed
// before the call returns. All failures are *common.StorageError.
type Repository interface {
	// FetchRange returns transactions whose date lies within [from, to],
	// bounds inclusive, ordered by date then id.
	FetchRange(ctx context.Context, from, to time.Time) ([]models.Transaction, error)

	// Upsert replaces-or-inserts each transaction keyed by id. The write is
	// a full-record overwrite, never a partial-field merge, which makes
	// identical-id writes idempotent.
	Upsert(ctx context.Context, txs []models.Transaction) error

	// Delete removes the row with the given id. An absent id is a no-op.
	Delete(ctx context.Context, id int64) error
}
