package accounts

import (
	"context"

	"github.com/avolkov/finsync/internal/client/models"
)

// Repository is the durable store for accounts. All failures are
// *common.StorageError.
type Repository interface {
	// FetchAll returns every stored account, ordered by id. The first one is
	// the primary account in this single-account model.
	FetchAll(ctx context.Context) ([]models.Account, error)

	// Upsert replaces-or-inserts each account keyed by id (full-record
	// overwrite).
	Upsert(ctx context.Context, accs []models.Account) error
}
