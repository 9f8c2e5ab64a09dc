package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/finsync/internal/client/models"

	_ "modernc.org/sqlite"
)

func TestInitDatabase_MigratesAndWires(t *testing.T) {
	ctx := context.Background()

	repos, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	date := time.Date(2025, 7, 18, 10, 0, 0, 0, time.UTC)
	tx := models.Transaction{
		ID:              1,
		AccountID:       1,
		CategoryID:      2,
		Amount:          decimal.RequireFromString("42.00"),
		TransactionDate: date,
		CreatedAt:       date,
		UpdatedAt:       date,
	}
	require.NoError(t, repos.Transactions.Upsert(ctx, []models.Transaction{tx}))

	got, err := repos.Transactions.FetchRange(ctx, date, date)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	require.NoError(t, repos.Categories.Upsert(ctx, []models.Category{{ID: 1, Name: "Food", Emoji: "🍔"}}))
	cats, err := repos.Categories.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)

	op := models.NewPendingDelete(1)
	require.NoError(t, repos.PendingOps.Save(ctx, op))
	ops, err := repos.PendingOps.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, ops, 1)
}
