package accounts

import (
	"context"
	"database/sql"
	"testing"
	"time"

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
CREATE TABLE accounts (
  id INTEGER PRIMARY KEY,
  user_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  balance TEXT NOT NULL,
  currency TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestUpsert_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 7, 18, 9, 0, 0, 0, time.UTC)

	acc := models.Account{
		ID:        1,
		UserID:    107,
		Name:      "Main",
		Balance:   decimal.RequireFromString("1234.56"),
		Currency:  "RUB",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, r.Upsert(ctx, []models.Account{acc}))

	got, err := r.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, acc.Name, got[0].Name)
	assert.Equal(t, acc.Currency, got[0].Currency)
	assert.True(t, acc.Balance.Equal(got[0].Balance))
}

func TestUpsert_ReplacesByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	first := models.Account{ID: 1, UserID: 107, Name: "Old", Balance: decimal.Zero, Currency: "RUB", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, r.Upsert(ctx, []models.Account{first}))

	second := first
	second.Name = "Renamed"
	second.Balance = decimal.RequireFromString("50")
	require.NoError(t, r.Upsert(ctx, []models.Account{second}))

	got, err := r.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Renamed", got[0].Name)
	assert.True(t, got[0].Balance.Equal(decimal.RequireFromString("50")))
}
