package accounts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/finsync/internal/client/models"
	"github.com/avolkov/finsync/internal/common"
	"github.com/avolkov/finsync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX. Balances are stored
// as decimal strings.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, accs []models.Account) error {
	query := `INSERT INTO accounts (id, user_id, name, balance, currency, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id,
				name = excluded.name,
				balance = excluded.balance,
				currency = excluded.currency,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at
	`
	for _, acc := range accs {
		_, err := r.db.ExecContext(ctx, query,
			acc.ID, acc.UserID, acc.Name, acc.Balance.String(), acc.Currency,
			acc.CreatedAt.UTC().Format(time.RFC3339), acc.UpdatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return &common.StorageError{Op: "upsert account", Err: err}
		}
	}
	return nil
}

func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]models.Account, error) {
	query := `SELECT id, user_id, name, balance, currency, created_at, updated_at
			FROM accounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &common.StorageError{Op: "select accounts", Err: err}
	}
	defer rows.Close()

	var result []models.Account
	for rows.Next() {
		var (
			item                       models.Account
			balance, createdAt, updated string
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &balance, &item.Currency, &createdAt, &updated); err != nil {
			return nil, &common.StorageError{Op: "scan account", Err: err}
		}
		if item.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, &common.StorageError{Op: "parse balance", Err: err}
		}
		if item.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, &common.StorageError{Op: "parse created_at", Err: err}
		}
		if item.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, &common.StorageError{Op: "parse updated_at", Err: err}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &common.StorageError{Op: "iterate accounts", Err: err}
	}
	return result, nil
}
