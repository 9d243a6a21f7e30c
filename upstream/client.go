package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/starsoft-labs/nft-market-api/models"
)

// Client talks to the upstream products API. It is the only component that
// sees the upstream wire format; everything past this boundary works with
// models.Item.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// rawProduct is the upstream transport shape. Prices arrive as decimal text.
type rawProduct struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	CreatedAt   string `json:"createdAt"`
}

type rawListResponse struct {
	Products []rawProduct `json:"products"`
	Count    int          `json:"count"`
}

// mapProduct converts the transport shape to the domain item. A price that
// does not parse as a finite number fails the whole mapping: a corrupt price
// is a data contract violation to surface, not something to coerce to zero
// or skip past.
func mapProduct(raw rawProduct) (models.Item, error) {
	price, err := strconv.ParseFloat(raw.Price, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return models.Item{}, fmt.Errorf("invalid product price for id %d", raw.ID)
	}

	return models.Item{
		ID:          strconv.FormatInt(raw.ID, 10),
		Name:        raw.Name,
		Description: raw.Description,
		Price:       price,
		Image:       raw.Image,
	}, nil
}

// FetchPage requests one page of the listing. Pages start at 1.
func (c *Client) FetchPage(ctx context.Context, page int, query models.ListQuery) (models.Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("rows", strconv.Itoa(query.Rows))
	params.Set("sortBy", query.SortBy)
	params.Set("orderBy", query.OrderBy)

	status, body, err := c.get(ctx, "/products?"+params.Encode())
	if err != nil {
		return models.Page{}, err
	}
	if status < 200 || status >= 300 {
		return models.Page{}, httpError(status, body)
	}

	var response rawListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Page{}, fmt.Errorf("decode products response: %w", err)
	}

	items := make([]models.Item, 0, len(response.Products))
	for _, raw := range response.Products {
		item, err := mapProduct(raw)
		if err != nil {
			return models.Page{}, err
		}
		items = append(items, item)
	}
	return models.Page{Items: items, Count: response.Count}, nil
}

// FetchItemByID fetches a single item for the detail view. A missing item is
// (nil, nil), not an error.
func (c *Client) FetchItemByID(ctx context.Context, id string) (*models.Item, error) {
	status, body, err := c.get(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, httpError(status, body)
	}

	var raw rawProduct
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}
	item, err := mapProduct(raw)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// httpError prefers the upstream "message" field when the error body carries
// one, falling back to the bare status.
func httpError(status int, body []byte) error {
	message := http.StatusText(status)
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}
	return fmt.Errorf("HTTP %d: %s", status, message)
}
