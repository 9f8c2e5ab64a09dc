package pendingops

import (
	"context"
	"time"

	"github.com/avolkov/finsync/internal/client/models"
	"github.com/avolkov/finsync/internal/common"
	"github.com/avolkov/finsync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX. Insertion order is
// the queue order: FetchAll sorts by rowid, which SQLite assigns
// monotonically on insert.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, op models.PendingOperation) error {
	query := `INSERT INTO pending_operations (id, kind, transaction_id, payload, recorded_at)
			VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		op.ID, string(op.Kind), op.TransactionID, op.Payload,
		op.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return &common.StorageError{Op: "save pending operation", Err: err}
	}
	return nil
}

func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]models.PendingOperation, error) {
	query := `SELECT id, kind, transaction_id, payload, recorded_at
			FROM pending_operations ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &common.StorageError{Op: "select pending operations", Err: err}
	}
	defer rows.Close()

	var result []models.PendingOperation
	for rows.Next() {
		var (
			item       models.PendingOperation
			kind       string
			recordedAt string
		)
		if err := rows.Scan(&item.ID, &kind, &item.TransactionID, &item.Payload, &recordedAt); err != nil {
			return nil, &common.StorageError{Op: "scan pending operation", Err: err}
		}
		item.Kind = models.OperationKind(kind)
		if item.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, &common.StorageError{Op: "parse recorded_at", Err: err}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &common.StorageError{Op: "iterate pending operations", Err: err}
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_operations WHERE id = ?`, id)
	if err != nil {
		return &common.StorageError{Op: "delete pending operation", Err: err}
	}
	return nil
}
