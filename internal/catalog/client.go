package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

// Client reads the product list from the catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the catalog API at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Products fetches GET /api/products. Every failure wraps entity.ErrNetwork.
func (c *Client) Products(ctx context.Context) ([]entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog responded %s", entity.ErrNetwork, resp.Status)
	}

	var products []entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decoding products: %v", entity.ErrNetwork, err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}
