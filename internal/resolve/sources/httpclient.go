package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/slabwatch/slabwatch/internal/domain"
)

// HTTPProductSearcher queries the external catalog API's product search
// endpoint. Responses are the API's ranked product list; parsing and strict
// matching happen in ExternalCatalog.
type HTTPProductSearcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProductSearcher creates a searcher for the given API base URL. A nil
// client gets a 10s-timeout default.
func NewHTTPProductSearcher(baseURL string, client *http.Client) *HTTPProductSearcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProductSearcher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *HTTPProductSearcher) Search(ctx context.Context, query string) ([]domain.CatalogProduct, error) {
	endpoint := fmt.Sprintf("%s/api/products?q=%s", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build product search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product search returned status %d", resp.StatusCode)
	}

	var products []domain.CatalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode product search response: %w", err)
	}
	return products, nil
}
