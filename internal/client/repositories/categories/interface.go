package categories

import (
	"context"

	"github.com/avolkov/finsync/internal/client/models"
)

// Repository is the durable store for the category reference set. All
// failures are *common.StorageError.
type Repository interface {
	// FetchAll returns every stored category, ordered by id.
	FetchAll(ctx context.Context) ([]models.Category, error)

	// Upsert replaces-or-inserts each category keyed by id.
	Upsert(ctx context.Context, cats []models.Category) error

	// Replace swaps the whole stored set for the given one in a single
	// transaction, dropping categories the server no longer reports.
	Replace(ctx context.Context, cats []models.Category) error
}
