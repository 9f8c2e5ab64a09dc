// Package models holds the client-side domain types. Monetary values use
// arbitrary-precision decimals, never binary floats.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single money movement on an account.
//
// Server-confirmed transactions carry positive ids assigned by the server.
// Transactions created locally while offline carry negative placeholder ids;
// the placeholder row is replaced once the server echoes the real id.
type Transaction struct {
	ID              int64           `json:"id"`
	AccountID       int64           `json:"accountId"`
	CategoryID      int64           `json:"categoryId"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Comment         string          `json:"comment"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// IsPlaceholder reports whether the transaction still carries a locally
// generated id that the server has not confirmed.
func (t Transaction) IsPlaceholder() bool {
	return t.ID < 0
}
