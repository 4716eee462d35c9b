package services

import (
	"context"
	"errors"

	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
	"github.com/spatiolabs/stacval/internal/core/ports/driving"
	"github.com/spatiolabs/stacval/internal/logger"
)

// Ensure ValidationService implements the interface.
var _ driving.DocumentValidator = (*ValidationService)(nil)

// ValidationService validates one document against its resolved schema
// set. Every failure mode is folded into the outcome so callers always
// get exactly one outcome per attempted location.
type ValidationService struct {
	fetcher driven.DocumentFetcher
	schemas driven.SchemaStore
	opts    driving.ValidateOptions
}

// NewValidationService creates a validation service.
func NewValidationService(fetcher driven.DocumentFetcher, schemas driven.SchemaStore, opts driving.ValidateOptions) *ValidationService {
	return &ValidationService{
		fetcher: fetcher,
		schemas: schemas,
		opts:    opts,
	}
}

// ValidateLocation fetches the document at location and validates it.
// Fetch and parse failures produce a terminal outcome with a single
// synthetic error entry.
func (s *ValidationService) ValidateLocation(ctx context.Context, location string) *domain.ValidationOutcome {
	doc, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		return FetchFailureOutcome(location, err)
	}
	return s.ValidateDocument(ctx, doc)
}

// FetchFailureOutcome builds the terminal outcome recorded for a
// location whose document could not be fetched or parsed.
func FetchFailureOutcome(location string, err error) *domain.ValidationOutcome {
	code := domain.CodeFetch
	if errors.Is(err, domain.ErrParse) {
		code = domain.CodeParse
	}
	logger.Debug("Fetch failed for %s: %v", location, err)
	return &domain.ValidationOutcome{
		Location: location,
		Valid:    false,
		Errors: []domain.ValidationError{{
			Code:     code,
			Message:  err.Error(),
			Severity: domain.SeverityError,
		}},
	}
}

// ValidateDocument validates an already-fetched document against every
// schema in its resolved set, collecting all violations in one pass.
// Schema resolution failures are reported as schema-unavailable entries
// and do not abort the remaining checks.
func (s *ValidationService) ValidateDocument(ctx context.Context, doc *domain.Document) *domain.ValidationOutcome {
	outcome := &domain.ValidationOutcome{Location: doc.Location}
	outcome.Type, _ = DetectType(doc)
	if version, ok := doc.StringField("stac_version"); ok {
		outcome.Version = version
	}
	if s.opts.VersionOverride != "" {
		outcome.Version = s.opts.VersionOverride
	}

	refs, notes, err := ResolveSchemaSet(doc, s.opts)
	outcome.Errors = append(outcome.Errors, notes...)
	if err != nil {
		outcome.Errors = append(outcome.Errors, domain.ValidationError{
			Code:     domain.CodeVersion,
			Message:  err.Error(),
			Severity: domain.SeverityError,
		})
		return outcome
	}

	for _, ref := range refs {
		ref := ref
		outcome.Checked = append(outcome.Checked, ref)

		entry, err := s.schemas.Resolve(ctx, ref)
		if err != nil {
			severity := domain.SeverityError
			if s.opts.LenientExtensions && ref.IsExtension() {
				severity = domain.SeverityWarning
			}
			logger.Warn("Schema unavailable for %s: %v", ref, err)
			outcome.Errors = append(outcome.Errors, domain.ValidationError{
				Schema:   &ref,
				Code:     domain.CodeSchemaUnavailable,
				Message:  err.Error(),
				Severity: severity,
			})
			continue
		}

		violations := entry.Schema.Validate(doc.Raw)
		for i := range violations {
			violations[i].Schema = &ref
		}
		outcome.Errors = append(outcome.Errors, violations...)
		logger.Debug("Checked %s against %s: %d violation(s)", doc.Location, ref, len(violations))
	}

	if s.opts.CheckLinks {
		outcome.Errors = append(outcome.Errors, s.checkLinks(ctx, doc)...)
	}
	if s.opts.CheckAssets {
		outcome.Errors = append(outcome.Errors, s.checkAssets(ctx, doc)...)
	}

	outcome.Valid = !outcome.Invalidated()
	return outcome
}
