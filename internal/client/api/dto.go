package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/finsync/internal/client/models"
)

// Wire shapes of the finance service. Amounts travel as decimal strings and
// dates as RFC 3339.

type transactionRequest struct {
	AccountID       int64  `json:"accountId"`
	CategoryID      int64  `json:"categoryId"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transactionDate"`
	Comment         string `json:"comment"`
}

func newTransactionRequest(tx models.Transaction) transactionRequest {
	return transactionRequest{
		AccountID:       tx.AccountID,
		CategoryID:      tx.CategoryID,
		Amount:          tx.Amount.String(),
		TransactionDate: tx.TransactionDate.UTC().Format(time.RFC3339),
		Comment:         tx.Comment,
	}
}

// transactionResponse nests brief account and category objects; only their
// ids matter for the local model.
type transactionResponse struct {
	ID              int64           `json:"id"`
	Account         accountBrief    `json:"account"`
	Category        models.Category `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Comment         string          `json:"comment"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type accountBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r transactionResponse) toModel() models.Transaction {
	return models.Transaction{
		ID:              r.ID,
		AccountID:       r.Account.ID,
		CategoryID:      r.Category.ID,
		Amount:          r.Amount,
		TransactionDate: r.TransactionDate,
		Comment:         r.Comment,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type accountUpdateRequest struct {
	Name     string `json:"name"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}
