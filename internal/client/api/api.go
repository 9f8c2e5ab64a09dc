// Package api is the remote service facade: one JSON/REST client exposed
// through per-entity interfaces. Every call is made exactly once — retry
// policy belongs to the sync queue, not here — and every failure is a
// *common.NetworkError so callers can branch on its kind.
package api

import (
	"context"
	"time"

	"github.com/avolkov/finsync/internal/client/models"
)

// TransactionAPI is the remote surface for transactions.
type TransactionAPI interface {
	// FetchTransactions returns the account's transactions whose date lies
	// within [from, to].
	FetchTransactions(ctx context.Context, accountID int64, from, to time.Time) ([]models.Transaction, error)

	// CreateTransaction submits a draft and returns the server's version,
	// carrying the server-assigned id and timestamps.
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)

	// UpdateTransaction submits an edit and returns the server's version.
	UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)

	// DeleteTransaction removes the transaction with the given id.
	DeleteTransaction(ctx context.Context, id int64) error
}

// AccountAPI is the remote surface for accounts.
type AccountAPI interface {
	// FetchAccounts returns the user's accounts; the first one is the
	// primary account.
	FetchAccounts(ctx context.Context) ([]models.Account, error)

	// UpdateAccount submits an account edit and returns the server's
	// version.
	UpdateAccount(ctx context.Context, acc models.Account) (models.Account, error)
}

// CategoryAPI is the remote surface for the category reference set.
type CategoryAPI interface {
	// FetchCategories returns the full category set.
	FetchCategories(ctx context.Context) ([]models.Category, error)
}
