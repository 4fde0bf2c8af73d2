package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultBaseURL is the public Open Food Facts v2 API.
	DefaultBaseURL = "https://world.openfoodfacts.org/api/v2"

	requestTimeout = 10 * time.Second
	userAgent      = "macrolog-backend/1.0"

	cacheTTL     = 15 * time.Minute
	cacheCleanup = 30 * time.Minute
)

var (
	// ErrProductNotFound means the lookup succeeded but no such product
	// exists. Distinct from ErrUnavailable so callers can tell "not in the
	// database" apart from "try again later".
	ErrProductNotFound = errors.New("product not found")

	// ErrUnavailable covers network failures, non-200 responses and
	// malformed bodies. The client never retries; that policy belongs to
	// the caller.
	ErrUnavailable = errors.New("food database unavailable")
)

// Client talks to the external food database. Barcode lookups are cached for
// a short while since scanning flows tend to hit the same code repeatedly.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *gocache.Cache
}

// NewClient creates a client against the given base URL; an empty string
// selects the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		cache:   gocache.New(cacheTTL, cacheCleanup),
	}
}

// productResponse is the wire shape of a barcode lookup.
type productResponse struct {
	Code          string      `json:"code"`
	Status        int         `json:"status"`
	StatusVerbose string      `json:"status_verbose"`
	Product       *rawProduct `json:"product"`
}

// searchResponse is the wire shape of a text search.
type searchResponse struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Products []rawProduct `json:"products"`
}

// SearchResult carries one page of normalized products plus the total match
// count reported upstream.
type SearchResult struct {
	Products   []Product `json:"products"`
	TotalCount int       `json:"total_count"`
}

const productFields = "code,product_name,product_name_de,brands,nutriscore_grade,nutriscore_score,nova_group,nutriments,serving_size,serving_quantity,image_url,image_small_url"

// LookupByBarcode fetches and normalizes one product. Returns
// ErrProductNotFound when the response carries no usable product and
// ErrUnavailable for transport failures or non-200 responses.
func (c *Client) LookupByBarcode(ctx context.Context, barcode string) (*Product, error) {
	if cached, ok := c.cache.Get(barcode); ok {
		product := cached.(Product)
		return &product, nil
	}

	var data productResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/product/%s", c.baseURL, url.PathEscape(barcode)), &data); err != nil {
		return nil, err
	}
	if data.Status != 1 || data.Product == nil {
		return nil, ErrProductNotFound
	}

	product := normalizeProduct(*data.Product)
	if product == nil {
		// A product without a name or calories is not usable as a food.
		return nil, ErrProductNotFound
	}

	c.cache.Set(barcode, *product, gocache.DefaultExpiration)
	return product, nil
}

// Search runs a text search and normalizes the result page. Products lacking
// essential nutrition data are filtered out.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("fields", productFields)

	var data searchResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode()), &data); err != nil {
		return nil, err
	}

	result := SearchResult{TotalCount: data.Count, Products: make([]Product, 0, len(data.Products))}
	for _, raw := range data.Products {
		if p := normalizeProduct(raw); p != nil {
			result.Products = append(result.Products, *p)
		}
	}
	return &result, nil
}

// getJSON performs one GET and decodes the body. Any non-200 status, transport
// failure, or decode failure maps to ErrUnavailable.
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: received status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	return nil
}
