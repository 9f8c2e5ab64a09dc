// Package storage opens the local SQLite database, applies migrations and
// bundles the durable stores behind one handle.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/avolkov/finsync/internal/client/migrations"
	"github.com/avolkov/finsync/internal/client/repositories/accounts"
	"github.com/avolkov/finsync/internal/client/repositories/categories"
	"github.com/avolkov/finsync/internal/client/repositories/pendingops"
	"github.com/avolkov/finsync/internal/client/repositories/transactions"

	_ "modernc.org/sqlite"
)

// Repositories bundles the durable stores backed by one SQLite database.
type Repositories struct {
	Transactions transactions.Repository
	Accounts     accounts.Repository
	Categories   categories.Repository
	PendingOps   pendingops.Repository
	DB           *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the database at dsn, applies migrations
// and returns the repository bundle. Close the bundle when done.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite permits a single writer; one pooled connection also keeps
	// in-memory databases coherent across queries.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Transactions: transactions.NewSQLiteRepository(db),
		Accounts:     accounts.NewSQLiteRepository(db),
		Categories:   categories.NewSQLiteRepository(db),
		PendingOps:   pendingops.NewSQLiteRepository(db),
		DB:           db,
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
