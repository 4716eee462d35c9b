package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
	"github.com/spatiolabs/stacval/internal/core/ports/driving"
)

// Ensure Runner implements the interface.
var _ driving.ValidationRunner = (*Runner)(nil)

// Runner is the entry point shared by the CLI and MCP adapters. It
// wires a validation service and, for recursive runs, a fresh crawl
// orchestrator per call so crawl state never leaks between runs.
type Runner struct {
	fetcher   driven.DocumentFetcher
	schemas   driven.SchemaStore
	valOpts   driving.ValidateOptions
	crawlOpts driving.CrawlOptions
}

// NewRunner creates a runner.
func NewRunner(fetcher driven.DocumentFetcher, schemas driven.SchemaStore, valOpts driving.ValidateOptions, crawlOpts driving.CrawlOptions) *Runner {
	return &Runner{
		fetcher:   fetcher,
		schemas:   schemas,
		valOpts:   valOpts,
		crawlOpts: crawlOpts,
	}
}

// Run validates a single document, or crawls the tree rooted at
// location when recursive is set, and returns the aggregated report.
func (r *Runner) Run(ctx context.Context, location string, recursive bool) (*domain.Report, error) {
	validator := NewValidationService(r.fetcher, r.schemas, r.valOpts)

	if recursive {
		crawler := NewCrawlOrchestrator(r.fetcher, validator, r.crawlOpts)
		return crawler.Crawl(ctx, location)
	}

	started := time.Now()
	outcome := validator.ValidateLocation(ctx, NormalizeLocation(location))
	return Summarize(uuid.NewString(), started, []domain.ValidationOutcome{*outcome}, true), nil
}
