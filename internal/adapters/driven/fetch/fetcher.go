// Package fetch retrieves STAC documents and schema bodies from local
// paths or HTTP(S) URLs. Remote fetches carry an independent timeout
// and a proactive token-bucket throttle so a crawl cannot overwhelm a
// remote catalog host.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/time/rate"

	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
	"github.com/spatiolabs/stacval/internal/logger"
)

const (
	// DefaultTimeout bounds a single remote fetch.
	DefaultTimeout = 30 * time.Second

	// FetchRate is the proactive throttle (requests per second).
	FetchRate = 8

	// FetchBurst is the throttle burst size.
	FetchBurst = 4

	// maxBodySize caps response bodies; STAC documents and schemas
	// are far smaller.
	maxBodySize = 32 << 20
)

// Ensure Fetcher implements the interfaces.
var (
	_ driven.DocumentFetcher = (*Fetcher)(nil)
	_ driven.BlobFetcher     = (*Fetcher)(nil)
)

// Fetcher retrieves documents and raw bytes.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// New creates a fetcher. A non-positive timeout falls back to the
// default.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(FetchRate), FetchBurst),
		timeout: timeout,
	}
}

// FetchRaw retrieves the bytes at location. Errors wrap domain.ErrFetch.
func (f *Fetcher) FetchRaw(ctx context.Context, location string) ([]byte, error) {
	if isRemote(location) {
		return f.fetchHTTP(ctx, location)
	}
	return f.fetchFile(location)
}

// Fetch retrieves and parses the document at location. Parse failures
// wrap domain.ErrParse so callers can distinguish them from transport
// failures.
func (f *Fetcher) Fetch(ctx context.Context, location string) (*domain.Document, error) {
	body, err := f.FetchRaw(ctx, location)
	if err != nil {
		return nil, err
	}

	// Decode through the schema engine's reader so documents and
	// schemas agree on number representation.
	raw, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, location, err)
	}

	return &domain.Document{Location: location, Raw: raw}, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, url, err)
	}

	logger.Debug("GET %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", domain.ErrFetch, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, url, err)
	}
	return body, nil
}

func (f *Fetcher) fetchFile(location string) ([]byte, error) {
	path := strings.TrimPrefix(location, "file://")
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, location, err)
	}
	return body, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
