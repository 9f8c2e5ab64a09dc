package api

import (
	"context"
	"net/http"

	"github.com/avolkov/finsync/internal/client/models"
)

func (c *Client) FetchCategories(ctx context.Context) ([]models.Category, error) {
	var resp []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
