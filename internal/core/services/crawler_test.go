package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driving"
)

// crawlFixture builds a small tree on a mock fetcher:
//
//	/data/catalog.json
//	├── /data/sub/catalog.json   (links back to the root: cycle)
//	│   └── /data/sub/item.json
//	├── /data/item.json
//	└── /data/missing.json       (fetch fails)
func crawlFixture() *mockFetcher {
	fetcher := newMockFetcher()
	fetcher.docs["/data/catalog.json"] = catalogDoc("/data/catalog.json",
		link("child", "./sub/catalog.json"),
		link("item", "./item.json"),
		link("item", "./missing.json"),
		link("self", "./catalog.json"),
	)
	fetcher.docs["/data/sub/catalog.json"] = catalogDoc("/data/sub/catalog.json",
		link("root", "../catalog.json"),
		link("child", "../catalog.json"),
		link("item", "./item.json"),
	)
	fetcher.docs["/data/sub/item.json"] = itemDoc("/data/sub/item.json")
	fetcher.docs["/data/item.json"] = itemDoc("/data/item.json")
	fetcher.errs["/data/missing.json"] = domain.ErrFetch
	return fetcher
}

func newTestCrawler(fetcher *mockFetcher, opts driving.CrawlOptions) *CrawlOrchestrator {
	validator := NewValidationService(fetcher, newMockSchemaStore(), driving.ValidateOptions{})
	return NewCrawlOrchestrator(fetcher, validator, opts)
}

func TestCrawl_VisitsWholeTree(t *testing.T) {
	fetcher := crawlFixture()
	crawler := newTestCrawler(fetcher, driving.CrawlOptions{})

	report, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	assert.True(t, report.Complete)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 4, report.Valid)
	assert.Equal(t, 1, report.Invalid)

	locations := make([]string, len(report.Outcomes))
	for i, outcome := range report.Outcomes {
		locations[i] = outcome.Location
	}
	assert.Equal(t, []string{
		"/data/catalog.json",
		"/data/item.json",
		"/data/missing.json",
		"/data/sub/catalog.json",
		"/data/sub/item.json",
	}, locations)
}

func TestCrawl_BrokenLinkIsTerminal(t *testing.T) {
	fetcher := crawlFixture()
	crawler := newTestCrawler(fetcher, driving.CrawlOptions{})

	report, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	var missing *domain.ValidationOutcome
	for i := range report.Outcomes {
		if report.Outcomes[i].Location == "/data/missing.json" {
			missing = &report.Outcomes[i]
		}
	}
	require.NotNil(t, missing)
	assert.False(t, missing.Valid)
	require.Len(t, missing.Errors, 1)
	assert.Equal(t, domain.CodeFetch, missing.Errors[0].Code)

	// The unreachable document must not poison the rest of the run.
	assert.True(t, report.Complete)
}

func TestCrawl_CycleFetchedOnce(t *testing.T) {
	fetcher := crawlFixture()
	crawler := newTestCrawler(fetcher, driving.CrawlOptions{})

	_, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	// The sub-catalog links back to the root through both a root rel
	// and a child rel. Every location is still fetched exactly once.
	for _, location := range []string{
		"/data/catalog.json",
		"/data/sub/catalog.json",
		"/data/sub/item.json",
		"/data/item.json",
		"/data/missing.json",
	} {
		assert.Equal(t, 1, fetcher.fetchCount(location), "fetch count for %s", location)
	}
}

func TestCrawl_Deterministic(t *testing.T) {
	fetcher := crawlFixture()

	first, err := newTestCrawler(fetcher, driving.CrawlOptions{Concurrency: 8}).
		Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	second, err := newTestCrawler(fetcher, driving.CrawlOptions{Concurrency: 1}).
		Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	require.Equal(t, len(first.Outcomes), len(second.Outcomes))
	for i := range first.Outcomes {
		assert.Equal(t, first.Outcomes[i].Location, second.Outcomes[i].Location)
		assert.Equal(t, first.Outcomes[i].Valid, second.Outcomes[i].Valid)
	}
}

func TestCrawl_ItemsAreLeaves(t *testing.T) {
	fetcher := newMockFetcher()
	item := itemDoc("/data/item.json")
	item.Raw.(map[string]any)["links"] = []any{link("child", "./never.json")}
	fetcher.docs["/data/catalog.json"] = catalogDoc("/data/catalog.json", link("item", "./item.json"))
	fetcher.docs["/data/item.json"] = item

	crawler := newTestCrawler(fetcher, driving.CrawlOptions{})
	report, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 0, fetcher.fetchCount("/data/never.json"))
}

func TestCrawl_FailFast(t *testing.T) {
	fetcher := newMockFetcher()
	root := catalogDoc("/data/catalog.json", link("item", "./a.json"), link("item", "./b.json"))
	// Root declares no stac_version, making it invalid.
	delete(root.Raw.(map[string]any), "stac_version")
	fetcher.docs["/data/catalog.json"] = root
	fetcher.docs["/data/a.json"] = itemDoc("/data/a.json")
	fetcher.docs["/data/b.json"] = itemDoc("/data/b.json")

	crawler := newTestCrawler(fetcher, driving.CrawlOptions{FailFast: true})
	report, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	assert.False(t, report.Complete)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 0, fetcher.fetchCount("/data/a.json"))
	assert.Equal(t, 0, fetcher.fetchCount("/data/b.json"))
}

func TestCrawl_Cancelled(t *testing.T) {
	fetcher := crawlFixture()
	crawler := newTestCrawler(fetcher, driving.CrawlOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := crawler.Crawl(ctx, "/data/catalog.json")
	require.NoError(t, err)

	assert.False(t, report.Complete)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, driving.CrawlCancelled, crawler.Status().State)
}

func TestCrawl_ConcurrencyBound(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.delay = 5 * time.Millisecond
	links := make([]map[string]any, 16)
	for i := range links {
		links[i] = link("item", string(rune('a'+i))+".json")
	}
	fetcher.docs["/data/catalog.json"] = catalogDoc("/data/catalog.json", links...)
	for i := range links {
		location := "/data/" + string(rune('a'+i)) + ".json"
		fetcher.docs[location] = itemDoc(location)
	}

	crawler := newTestCrawler(fetcher, driving.CrawlOptions{Concurrency: 2})
	report, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	assert.Equal(t, 17, report.Total)
	assert.LessOrEqual(t, fetcher.maxInUse.Load(), int32(2))
}

func TestCrawl_MaxDepth(t *testing.T) {
	fetcher := crawlFixture()
	crawler := newTestCrawler(fetcher, driving.CrawlOptions{MaxDepth: 1})

	report, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	// Root (depth 0) plus its direct links (depth 1); the sub-catalog
	// is validated but its own item is never reached.
	assert.Equal(t, 4, report.Total)
	assert.True(t, report.Complete)
	assert.Equal(t, 0, fetcher.fetchCount("/data/sub/item.json"))
	assert.Equal(t, 1, fetcher.fetchCount("/data/sub/catalog.json"))
}

func TestCrawl_RejectsConcurrentRun(t *testing.T) {
	crawler := newTestCrawler(newMockFetcher(), driving.CrawlOptions{})
	crawler.state = driving.CrawlRunning

	_, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	assert.ErrorIs(t, err, domain.ErrCrawlRunning)
}

func TestStatus_AfterRun(t *testing.T) {
	fetcher := crawlFixture()
	crawler := newTestCrawler(fetcher, driving.CrawlOptions{})

	assert.Equal(t, driving.CrawlIdle, crawler.Status().State)

	_, err := crawler.Crawl(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	status := crawler.Status()
	assert.Equal(t, driving.CrawlCompleted, status.State)
	assert.Equal(t, 5, status.Visited)
	assert.Equal(t, 1, status.Invalid)
}
