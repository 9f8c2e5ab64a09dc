package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a bank account. The balance is derived on the server as a side
// effect of transaction mutations; the client never computes it locally and
// refreshes it after every confirmed transaction change.
type Account struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
