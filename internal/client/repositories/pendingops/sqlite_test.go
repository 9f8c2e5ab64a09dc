package pendingops

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/finsync/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE pending_operations (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  transaction_id INTEGER,
  payload BLOB,
  recorded_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestFetchAll_PreservesRecordedOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	sample := models.Transaction{ID: 5, AccountID: 1, CategoryID: 2, Amount: decimal.RequireFromString("10")}

	update, err := models.NewPendingOperation(models.OpUpdate, sample)
	require.NoError(t, err)
	del := models.NewPendingDelete(5)

	require.NoError(t, r.Save(ctx, update))
	require.NoError(t, r.Save(ctx, del))

	got, err := r.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.OpUpdate, got[0].Kind)
	assert.Equal(t, models.OpDelete, got[1].Kind)
	assert.Equal(t, int64(5), got[1].TransactionID)
}

func TestSaveFetch_RoundTripsPayload(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	sample := models.Transaction{ID: -1, AccountID: 1, CategoryID: 2, Amount: decimal.RequireFromString("100.00")}
	op, err := models.NewPendingOperation(models.OpCreate, sample)
	require.NoError(t, err)
	require.NoError(t, r.Save(ctx, op))

	got, err := r.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	decoded, err := got[0].Transaction()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), decoded.ID)
	assert.True(t, decoded.Amount.Equal(sample.Amount))
}

func TestDelete_RemovesOnlyTarget(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := models.NewPendingDelete(1)
	b := models.NewPendingDelete(2)
	require.NoError(t, r.Save(ctx, a))
	require.NoError(t, r.Save(ctx, b))

	require.NoError(t, r.Delete(ctx, a.ID))

	got, err := r.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	// Deleting an id that is already gone is a no-op.
	require.NoError(t, r.Delete(ctx, a.ID))
}
