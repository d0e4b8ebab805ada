package strapi

import (
	"context"
	"net/http"

	"github.com/nderose7/shiptrack-app/models"
)

type productsResponse struct {
	Data []models.ProductEntry `json:"data"`
}

// FetchProducts returns the full product catalog. The catalog is always
// fetched fresh; nothing is cached client-side.
func (c *Client) FetchProducts(ctx context.Context) ([]models.ProductEntry, error) {
	var resp productsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/products", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
