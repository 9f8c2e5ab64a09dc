package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avolkov/finsync/internal/client/models"
)

// dateOnly is the query format the service expects for period bounds.
const dateOnly = "2006-01-02"

func (c *Client) FetchTransactions(ctx context.Context, accountID int64, from, to time.Time) ([]models.Transaction, error) {
	query := url.Values{}
	query.Set("startDate", from.UTC().Format(dateOnly))
	query.Set("endDate", to.UTC().Format(dateOnly))

	var resp []transactionResponse
	path := fmt.Sprintf("/transactions/account/%d/period", accountID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}

	result := make([]models.Transaction, 0, len(resp))
	for _, item := range resp {
		result = append(result, item.toModel())
	}
	return result, nil
}

func (c *Client) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	var resp transactionResponse
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, newTransactionRequest(tx), &resp); err != nil {
		return models.Transaction{}, err
	}
	return resp.toModel(), nil
}

func (c *Client) UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	var resp transactionResponse
	path := fmt.Sprintf("/transactions/%d", tx.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, newTransactionRequest(tx), &resp); err != nil {
		return models.Transaction{}, err
	}
	return resp.toModel(), nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil, nil)
}
