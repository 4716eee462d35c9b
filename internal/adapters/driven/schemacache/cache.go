// Package schemacache implements the SchemaStore port: a process-scoped
// cache of compiled schemas keyed by SchemaRef.
//
// Resolution is at-most-one-fetch per ref. Concurrent Resolve calls for
// the same ref share a single fetch+compile through a singleflight
// group; failures are returned to every waiter but never cached, so a
// transient network error does not poison later resolutions.
//
// Raw schema bodies load through an optional SchemaBlobStore
// write-through layer, which also serves $ref targets inside schemas,
// so a warm on-disk cache avoids the network entirely.
package schemacache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spatiolabs/stacval/internal/adapters/driven/schemaregistry"
	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
	"github.com/spatiolabs/stacval/internal/logger"
)

// Ensure Cache implements the interface.
var _ driven.SchemaStore = (*Cache)(nil)

// Cache resolves schema refs to compiled schemas, fetching each ref's
// body at most once per process. Entries are immutable once stored and
// live until Close; a single run touches a few dozen schemas at most,
// so the cache is unbounded.
type Cache struct {
	registry *schemaregistry.Registry
	fetcher  driven.BlobFetcher
	blobs    driven.SchemaBlobStore // optional, may be nil
	printer  *message.Printer

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*driven.SchemaEntry
}

// New creates a schema cache. blobs may be nil to disable on-disk
// persistence.
func New(registry *schemaregistry.Registry, fetcher driven.BlobFetcher, blobs driven.SchemaBlobStore) *Cache {
	return &Cache{
		registry: registry,
		fetcher:  fetcher,
		blobs:    blobs,
		printer:  message.NewPrinter(language.English),
		entries:  make(map[string]*driven.SchemaEntry),
	}
}

// Resolve returns the compiled schema for ref, fetching and compiling
// it on first use. Concurrent callers for the same ref share one fetch.
func (c *Cache) Resolve(ctx context.Context, ref domain.SchemaRef) (*driven.SchemaEntry, error) {
	key := ref.Key()

	c.mu.RLock()
	entry := c.entries[key]
	c.mu.RUnlock()
	if entry != nil {
		return entry, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// A waiter may have stored the entry between the fast path
		// and joining the flight.
		c.mu.RLock()
		entry := c.entries[key]
		c.mu.RUnlock()
		if entry != nil {
			return entry, nil
		}

		endpoint, err := c.registry.Endpoint(ref)
		if err != nil {
			return nil, err
		}

		logger.Debug("Compiling schema %s from %s", ref, endpoint)
		schema, err := c.compile(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrSchemaUnavailable, ref, err)
		}

		entry = &driven.SchemaEntry{
			Ref:       ref,
			SourceURL: endpoint,
			FetchedAt: time.Now(),
			Schema:    &compiledSchema{schema: schema, printer: c.printer},
		}
		c.mu.Lock()
		c.entries[key] = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*driven.SchemaEntry), nil
}

// Close releases the optional blob store.
func (c *Cache) Close() error {
	if c.blobs != nil {
		return c.blobs.Close()
	}
	return nil
}

// compile builds a fresh compiler per schema so resources registered
// for one schema never leak into another. Each call owns its compiler,
// so compiles for distinct refs run concurrently; the shared state
// underneath (blob store, entry map) synchronizes itself.
func (c *Cache) compile(ctx context.Context, endpoint string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.UseLoader(&cacheLoader{ctx: ctx, cache: c})
	return compiler.Compile(endpoint)
}

// loadRaw serves a schema body, preferring the persistent blob store
// and writing fetched bodies through to it.
func (c *Cache) loadRaw(ctx context.Context, url string) ([]byte, error) {
	if c.blobs != nil {
		body, err := c.blobs.Get(ctx, url)
		if err == nil {
			logger.Debug("Schema cache hit (disk): %s", url)
			return body, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Schema cache read failed for %s: %v", url, err)
		}
	}

	body, err := c.fetcher.FetchRaw(ctx, url)
	if err != nil {
		return nil, err
	}

	if c.blobs != nil {
		if err := c.blobs.Put(ctx, url, body); err != nil {
			logger.Warn("Schema cache write failed for %s: %v", url, err)
		}
	}
	return body, nil
}

// cacheLoader adapts loadRaw to the schema compiler's loader interface.
// The compiler resolves every $ref through it, so nested schema
// documents share the same cache and fetch path.
type cacheLoader struct {
	ctx   context.Context
	cache *Cache
}

func (l *cacheLoader) Load(url string) (any, error) {
	body, err := l.cache.loadRaw(l.ctx, url)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(body))
}
