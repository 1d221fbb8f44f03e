// Package http fetches mirror catalog documents.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cperrin88/mirrorget/pkg/catalog"
	"github.com/cperrin88/mirrorget/pkg/errutils"
)

// MaxCatalogSize bounds the size of a catalog document.
const MaxCatalogSize = 16 << 20

// HTTPClient fetches catalog documents over HTTP(S).
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a catalog client. timeout bounds the whole request.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = "mirrorget/1.0"
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// FetchCatalog downloads and parses the catalog document at catalogURL.
// Parse failures wrap errutils.ErrMalformedCatalog.
func (hc *HTTPClient) FetchCatalog(ctx context.Context, catalogURL string) (*catalog.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, catalogURL, http.NoBody)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", hc.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to download catalog")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, MaxCatalogSize+1)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read response body")
	}
	if len(data) > MaxCatalogSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", errutils.ErrMalformedCatalog, MaxCatalogSize)
	}

	return catalog.Parse(data)
}
