package driving

import (
	"context"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// ValidateOptions control how a single document is validated.
type ValidateOptions struct {
	// VersionOverride forces validation against this STAC version
	// instead of the document's declared one. Empty means use the
	// declared version.
	VersionOverride string

	// CoreOnly skips declared extension schemas.
	CoreOnly bool

	// CustomSchema validates against this schema URL or path instead
	// of the derived schema set.
	CustomSchema string

	// LenientExtensions downgrades extension schema fetch failures
	// from errors to warnings, so an unreachable extension host does
	// not invalidate the document.
	LenientExtensions bool

	// CheckLinks probes every link target for reachability. Failures
	// are recorded as warnings and never affect validity.
	CheckLinks bool

	// CheckAssets probes every asset href for reachability. Failures
	// are recorded as warnings and never affect validity.
	CheckAssets bool
}

// DocumentValidator validates single documents.
//
// Neither method returns an error: every failure mode (fetch, parse,
// unresolvable version, unavailable schema) is folded into the outcome
// so a crawl always records one entry per attempted location.
type DocumentValidator interface {
	// ValidateLocation fetches and validates the document at location.
	ValidateLocation(ctx context.Context, location string) *domain.ValidationOutcome

	// ValidateDocument validates an already-fetched document.
	ValidateDocument(ctx context.Context, doc *domain.Document) *domain.ValidationOutcome
}

// ValidationRunner is the coarse entry point shared by the CLI and MCP
// adapters: validate one document, or crawl a whole tree, and produce
// a report either way.
type ValidationRunner interface {
	Run(ctx context.Context, location string, recursive bool) (*domain.Report, error)
}
