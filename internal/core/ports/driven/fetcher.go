package driven

import (
	"context"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// DocumentFetcher retrieves a STAC document from a local path or URI
// and parses it. Errors wrap domain.ErrFetch (retrieval failed) or
// domain.ErrParse (retrieved bytes are not valid JSON) so callers can
// classify the failure.
type DocumentFetcher interface {
	Fetch(ctx context.Context, location string) (*domain.Document, error)
}

// BlobFetcher retrieves raw bytes from a local path or URI.
// Used for schema bodies, where parsing is the schema engine's job.
// Errors wrap domain.ErrFetch.
type BlobFetcher interface {
	FetchRaw(ctx context.Context, location string) ([]byte, error)
}
