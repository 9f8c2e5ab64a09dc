package categories

import (
	"context"
	"database/sql"

	"github.com/avolkov/finsync/internal/client/models"
	"github.com/avolkov/finsync/internal/common"
	"github.com/avolkov/finsync/internal/dbx"
)

// SQLiteRepository implements Repository. It holds the *sql.DB rather than a
// bare DBTX because Replace opens its own transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func upsertAll(ctx context.Context, db dbx.DBTX, cats []models.Category) error {
	query := `INSERT INTO categories (id, name, emoji, is_income)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				emoji = excluded.emoji,
				is_income = excluded.is_income
	`
	for _, cat := range cats {
		if _, err := db.ExecContext(ctx, query, cat.ID, cat.Name, cat.Emoji, cat.IsIncome); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, cats []models.Category) error {
	if err := upsertAll(ctx, r.db, cats); err != nil {
		return &common.StorageError{Op: "upsert category", Err: err}
	}
	return nil
}

func (r *SQLiteRepository) Replace(ctx context.Context, cats []models.Category) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
			return err
		}
		return upsertAll(ctx, tx, cats)
	})
	if err != nil {
		return &common.StorageError{Op: "replace categories", Err: err}
	}
	return nil
}

func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, emoji, is_income FROM categories ORDER BY id`)
	if err != nil {
		return nil, &common.StorageError{Op: "select categories", Err: err}
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.Name, &item.Emoji, &item.IsIncome); err != nil {
			return nil, &common.StorageError{Op: "scan category", Err: err}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &common.StorageError{Op: "iterate categories", Err: err}
	}
	return result, nil
}
