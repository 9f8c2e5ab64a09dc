package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OperationKind is the kind of deferred mutation a PendingOperation replays.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// PendingOperation is one mutation whose remote commit failed, recorded
// durably so it can be replayed on a later sync pass. Create and update
// carry a full JSON snapshot of the transaction; delete carries only the
// target id. Operations are never mutated in place and are removed from the
// queue only after a successful replay.
type PendingOperation struct {
	ID            string
	Kind          OperationKind
	TransactionID int64
	Payload       []byte
	RecordedAt    time.Time
}

// NewPendingOperation records a create or update of the given transaction.
func NewPendingOperation(kind OperationKind, tx Transaction) (PendingOperation, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return PendingOperation{}, err
	}
	return PendingOperation{
		ID:            uuid.NewString(),
		Kind:          kind,
		TransactionID: tx.ID,
		Payload:       payload,
		RecordedAt:    time.Now().UTC(),
	}, nil
}

// NewPendingDelete records a delete of the transaction with the given id.
func NewPendingDelete(id int64) PendingOperation {
	return PendingOperation{
		ID:            uuid.NewString(),
		Kind:          OpDelete,
		TransactionID: id,
		RecordedAt:    time.Now().UTC(),
	}
}

// Transaction decodes the snapshot carried by a create or update operation.
func (op PendingOperation) Transaction() (Transaction, error) {
	var tx Transaction
	if err := json.Unmarshal(op.Payload, &tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
