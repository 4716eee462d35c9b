package driven

import (
	"context"
	"time"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// CompiledSchema is a schema ready to run structural validation.
// The underlying matching engine lives behind this interface; core
// services never see it directly.
type CompiledSchema interface {
	// Validate checks a decoded JSON instance and returns one entry per
	// violated constraint, with JSON-pointer paths. It does not stop at
	// the first violation. An empty result means the instance conforms.
	// The originating SchemaRef is stamped onto entries by the caller.
	Validate(instance any) []domain.ValidationError
}

// SchemaEntry is a cached, compiled schema plus fetch metadata.
// Entries are created once per SchemaRef and never mutated; concurrent
// validations share them read-only.
type SchemaEntry struct {
	// Ref identifies the schema.
	Ref domain.SchemaRef

	// SourceURL is where the schema body was fetched from.
	SourceURL string

	// FetchedAt is when the body was fetched.
	FetchedAt time.Time

	// Schema is the compiled schema.
	Schema CompiledSchema
}

// SchemaStore resolves schema refs to compiled schemas.
//
// Implementations must guarantee at-most-one-fetch per ref: concurrent
// Resolve calls for the same ref trigger a single fetch and share its
// result. A failed resolution must not be cached, and must not affect
// resolution of other refs.
type SchemaStore interface {
	Resolve(ctx context.Context, ref domain.SchemaRef) (*SchemaEntry, error)
	Close() error
}

// SchemaBlobStore persists raw schema bodies across runs, keyed by
// their source URL. Get returns domain.ErrNotFound for absent keys.
type SchemaBlobStore interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Put(ctx context.Context, url string, body []byte) error
	Close() error
}
