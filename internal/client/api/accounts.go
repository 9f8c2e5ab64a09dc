package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avolkov/finsync/internal/client/models"
)

func (c *Client) FetchAccounts(ctx context.Context) ([]models.Account, error) {
	var resp []models.Account
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdateAccount(ctx context.Context, acc models.Account) (models.Account, error) {
	body := accountUpdateRequest{
		Name:     acc.Name,
		Balance:  acc.Balance.String(),
		Currency: acc.Currency,
	}

	var resp models.Account
	path := fmt.Sprintf("/accounts/%d", acc.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return models.Account{}, err
	}
	return resp, nil
}
