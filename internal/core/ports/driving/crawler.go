package driving

import (
	"context"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// CrawlState is the orchestrator's lifecycle state.
type CrawlState string

const (
	// CrawlIdle means no crawl has started.
	CrawlIdle CrawlState = "idle"

	// CrawlRunning means a crawl is in progress.
	CrawlRunning CrawlState = "running"

	// CrawlCompleted means the crawl visited the whole tree.
	CrawlCompleted CrawlState = "completed"

	// CrawlCancelled means the crawl stopped before finishing, either
	// by external cancellation or fail-fast.
	CrawlCancelled CrawlState = "cancelled"
)

// CrawlOptions control a crawl.
type CrawlOptions struct {
	// Concurrency bounds simultaneously in-flight fetch+validate
	// operations. Values below 1 fall back to the default.
	Concurrency int

	// FailFast stops frontier expansion after the first invalid
	// document. Outcomes collected so far are still reported.
	FailFast bool

	// MaxDepth bounds traversal depth from the root (the root is
	// depth 0). Documents at the bound are validated but their links
	// are not followed. Zero means unbounded.
	MaxDepth int
}

// CrawlStatus is a point-in-time snapshot of a crawl.
type CrawlStatus struct {
	// State is the lifecycle state.
	State CrawlState

	// Visited is the number of locations processed so far.
	Visited int

	// Invalid is the number of invalid outcomes so far.
	Invalid int
}

// CrawlOrchestrator drives recursive traversal of a catalog tree.
// One orchestrator runs one crawl; state is scoped to that run.
type CrawlOrchestrator interface {
	// Crawl traverses the tree rooted at root, validating every
	// unique location exactly once, and returns the aggregated
	// report. Cancellation via ctx lets in-flight work finish,
	// stops expansion and flags the report as partial.
	Crawl(ctx context.Context, root string) (*domain.Report, error)

	// Status returns a snapshot of crawl progress.
	Status() CrawlStatus
}
