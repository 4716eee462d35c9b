package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
	"github.com/spatiolabs/stacval/internal/core/ports/driving"
	"github.com/spatiolabs/stacval/internal/logger"
)

// DefaultConcurrency bounds in-flight fetch+validate operations when
// no explicit limit is configured. Kept small to avoid overwhelming a
// remote catalog host.
const DefaultConcurrency = 4

// Ensure CrawlOrchestrator implements the interface.
var _ driving.CrawlOrchestrator = (*CrawlOrchestrator)(nil)

// CrawlOrchestrator traverses a catalog tree, validating every unique
// location exactly once. All crawl state (visited set, outcomes,
// lifecycle) is scoped to one Crawl call; the orchestrator holds no
// cross-crawl state.
type CrawlOrchestrator struct {
	fetcher     driven.DocumentFetcher
	validator   driving.DocumentValidator
	concurrency int
	failFast    bool
	maxDepth    int

	mu       sync.Mutex
	state    driving.CrawlState
	visited  map[string]bool
	outcomes []domain.ValidationOutcome
	invalid  int
	stopped  bool
}

// NewCrawlOrchestrator creates a crawl orchestrator.
func NewCrawlOrchestrator(fetcher driven.DocumentFetcher, validator driving.DocumentValidator, opts driving.CrawlOptions) *CrawlOrchestrator {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &CrawlOrchestrator{
		fetcher:     fetcher,
		validator:   validator,
		concurrency: concurrency,
		failFast:    opts.FailFast,
		maxDepth:    opts.MaxDepth,
		state:       driving.CrawlIdle,
	}
}

// Crawl traverses the tree rooted at root. Workers are bounded by the
// configured concurrency; the visited set guarantees each location is
// processed at most once even with cyclic parent/root links. The
// returned report sorts outcomes by location, so two crawls over the
// same tree produce identical reports regardless of completion order.
func (c *CrawlOrchestrator) Crawl(ctx context.Context, root string) (*domain.Report, error) {
	started := time.Now()

	c.mu.Lock()
	if c.state == driving.CrawlRunning {
		c.mu.Unlock()
		return nil, domain.ErrCrawlRunning
	}
	c.state = driving.CrawlRunning
	c.visited = make(map[string]bool)
	c.outcomes = nil
	c.invalid = 0
	c.stopped = false
	c.mu.Unlock()

	logger.Section("Crawl")
	logger.Info("Starting crawl at %s (concurrency %d)", root, c.concurrency)

	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	var visit func(location string, depth int)
	visit = func(location string, depth int) {
		defer wg.Done()
		sem <- struct{}{}
		defer func() { <-sem }()

		// Cooperative cancellation: checked between documents,
		// never mid-validation.
		if ctx.Err() != nil || c.isStopped() {
			return
		}

		doc, err := c.fetcher.Fetch(ctx, location)
		if err != nil {
			// Terminal outcome; the location is not expanded further.
			c.record(FetchFailureOutcome(location, err))
			return
		}

		outcome := c.validator.ValidateDocument(ctx, doc)

		var links []domain.LinkRef
		if outcome.Type != domain.TypeItem {
			var notes []domain.ValidationError
			links, notes = ExtractLinks(doc)
			outcome.Errors = append(outcome.Errors, notes...)
		}
		c.record(outcome)

		if c.failFast && !outcome.Valid {
			logger.Info("Fail-fast: stopping expansion after %s", location)
			c.stop()
			return
		}

		// Documents at the depth bound are validated but not expanded.
		if c.maxDepth > 0 && depth >= c.maxDepth {
			return
		}

		for _, link := range links {
			target := NormalizeLocation(link.Target)
			if !c.markVisited(target) {
				continue
			}
			wg.Add(1)
			go visit(target, depth+1)
		}
	}

	start := NormalizeLocation(root)
	c.markVisited(start)
	wg.Add(1)
	go visit(start, 0)
	wg.Wait()

	c.mu.Lock()
	complete := ctx.Err() == nil && !c.stopped
	if complete {
		c.state = driving.CrawlCompleted
	} else {
		c.state = driving.CrawlCancelled
	}
	outcomes := make([]domain.ValidationOutcome, len(c.outcomes))
	copy(outcomes, c.outcomes)
	c.mu.Unlock()

	logger.Info("Crawl finished: %d location(s), complete=%t", len(outcomes), complete)
	return Summarize(uuid.NewString(), started, outcomes, complete), nil
}

// Status returns a snapshot of crawl progress.
func (c *CrawlOrchestrator) Status() driving.CrawlStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return driving.CrawlStatus{
		State:   c.state,
		Visited: len(c.outcomes),
		Invalid: c.invalid,
	}
}

// markVisited atomically checks and inserts a location into the
// visited set. Returns true when the caller owns the location.
func (c *CrawlOrchestrator) markVisited(location string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visited[location] {
		return false
	}
	c.visited[location] = true
	return true
}

func (c *CrawlOrchestrator) record(outcome *domain.ValidationOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, *outcome)
	if !outcome.Valid {
		c.invalid++
	}
}

func (c *CrawlOrchestrator) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}

func (c *CrawlOrchestrator) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
