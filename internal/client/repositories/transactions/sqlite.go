package transactions

import (
	"time"

	"context"

	"github.com/shopspring/decimal"

	"github.com/avolkov/finsync/internal/client/models"
	"github.com/avolkov/finsync/internal/common"
	"github.com/avolkov/finsync/internal/dbx"
)

// SQLiteRepository implements Repository on top of a DBTX (either *sql.DB or
// *sql.Tx). The transaction date is stored as unix seconds so range queries
// stay plain integer comparisons; amounts are stored as decimal strings.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, txs []models.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, category_id, amount, transaction_date, comment, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET account_id = excluded.account_id,
				category_id = excluded.category_id,
				amount = excluded.amount,
				transaction_date = excluded.transaction_date,
				comment = excluded.comment,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at
	`
	for _, tx := range txs {
		_, err := r.db.ExecContext(ctx, query,
			tx.ID, tx.AccountID, tx.CategoryID, tx.Amount.String(),
			tx.TransactionDate.UTC().Unix(), tx.Comment,
			tx.CreatedAt.UTC().Format(time.RFC3339), tx.UpdatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return &common.StorageError{Op: "upsert transaction", Err: err}
		}
	}
	return nil
}

func (r *SQLiteRepository) FetchRange(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	query := `SELECT id, account_id, category_id, amount, transaction_date, comment, created_at, updated_at
			FROM transactions
			WHERE transaction_date >= ? AND transaction_date <= ?
			ORDER BY transaction_date, id`
	rows, err := r.db.QueryContext(ctx, query, from.UTC().Unix(), to.UTC().Unix())
	if err != nil {
		return nil, &common.StorageError{Op: "select transactions", Err: err}
	}
	defer rows.Close()

	var result []models.Transaction
	for rows.Next() {
		var (
			item                       models.Transaction
			amount, createdAt, updated string
			date                       int64
		)
		if err := rows.Scan(&item.ID, &item.AccountID, &item.CategoryID, &amount, &date, &item.Comment, &createdAt, &updated); err != nil {
			return nil, &common.StorageError{Op: "scan transaction", Err: err}
		}
		if item.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, &common.StorageError{Op: "parse amount", Err: err}
		}
		item.TransactionDate = time.Unix(date, 0).UTC()
		if item.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, &common.StorageError{Op: "parse created_at", Err: err}
		}
		if item.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, &common.StorageError{Op: "parse updated_at", Err: err}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &common.StorageError{Op: "iterate transactions", Err: err}
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return &common.StorageError{Op: "delete transaction", Err: err}
	}
	return nil
}
