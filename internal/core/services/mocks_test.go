package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockFetcher implements driven.DocumentFetcher for testing. Documents
// are served from a map keyed by location; unknown locations return
// the configured error.
type mockFetcher struct {
	mu       sync.Mutex
	docs     map[string]*domain.Document
	errs     map[string]error
	calls    map[string]int
	delay    time.Duration
	inUse    atomic.Int32
	maxInUse atomic.Int32
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		docs:  make(map[string]*domain.Document),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (m *mockFetcher) Fetch(_ context.Context, location string) (*domain.Document, error) {
	current := m.inUse.Add(1)
	defer m.inUse.Add(-1)
	for {
		max := m.maxInUse.Load()
		if current <= max || m.maxInUse.CompareAndSwap(max, current) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[location]++
	if err, ok := m.errs[location]; ok {
		return nil, err
	}
	doc, ok := m.docs[location]
	if !ok {
		return nil, domain.ErrFetch
	}
	return doc, nil
}

func (m *mockFetcher) fetchCount(location string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[location]
}

// mockCompiledSchema implements driven.CompiledSchema for testing.
type mockCompiledSchema struct {
	violations []domain.ValidationError
}

func (m *mockCompiledSchema) Validate(_ any) []domain.ValidationError {
	out := make([]domain.ValidationError, len(m.violations))
	copy(out, m.violations)
	return out
}

// mockSchemaStore implements driven.SchemaStore for testing. Refs keyed
// in errs fail resolution; refs keyed in schemas resolve to the given
// compiled schema; everything else resolves to an empty schema that
// accepts any instance.
type mockSchemaStore struct {
	schemas map[string]*mockCompiledSchema
	errs    map[string]error
}

func newMockSchemaStore() *mockSchemaStore {
	return &mockSchemaStore{
		schemas: make(map[string]*mockCompiledSchema),
		errs:    make(map[string]error),
	}
}

func (m *mockSchemaStore) Resolve(_ context.Context, ref domain.SchemaRef) (*driven.SchemaEntry, error) {
	if err, ok := m.errs[ref.Key()]; ok {
		return nil, err
	}
	schema, ok := m.schemas[ref.Key()]
	if !ok {
		schema = &mockCompiledSchema{}
	}
	return &driven.SchemaEntry{Ref: ref, Schema: schema}, nil
}

func (m *mockSchemaStore) Close() error {
	return nil
}

// --- Document builders ---

func itemDoc(location string) *domain.Document {
	return &domain.Document{
		Location: location,
		Raw: map[string]any{
			"type":         "Feature",
			"stac_version": "1.0.0",
			"id":           "test-item",
			"geometry":     nil,
			"properties":   map[string]any{"datetime": "2021-01-01T00:00:00Z"},
		},
	}
}

func catalogDoc(location string, links ...map[string]any) *domain.Document {
	rawLinks := make([]any, len(links))
	for i, l := range links {
		rawLinks[i] = l
	}
	return &domain.Document{
		Location: location,
		Raw: map[string]any{
			"type":         "Catalog",
			"stac_version": "1.0.0",
			"id":           "test-catalog",
			"links":        rawLinks,
		},
	}
}

func link(rel, href string) map[string]any {
	return map[string]any{"rel": rel, "href": href}
}
