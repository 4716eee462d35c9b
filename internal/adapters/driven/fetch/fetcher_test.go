package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFetch_LocalFile(t *testing.T) {
	path := writeTempFile(t, "item.json", `{"type": "Feature", "stac_version": "1.0.0"}`)
	fetcher := New(0)

	doc, err := fetcher.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Location)

	declared, ok := doc.StringField("type")
	assert.True(t, ok)
	assert.Equal(t, "Feature", declared)
}

func TestFetch_FileURI(t *testing.T) {
	path := writeTempFile(t, "catalog.json", `{"type": "Catalog"}`)
	fetcher := New(0)

	doc, err := fetcher.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)

	declared, ok := doc.StringField("type")
	assert.True(t, ok)
	assert.Equal(t, "Catalog", declared)
}

func TestFetch_MissingFile(t *testing.T) {
	fetcher := New(0)

	_, err := fetcher.Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.NotErrorIs(t, err, domain.ErrParse)
}

func TestFetch_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "bad.json", `{"type": "Feature"`)
	fetcher := New(0)

	_, err := fetcher.Fetch(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.NotErrorIs(t, err, domain.ErrFetch)
}

func TestFetch_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"type": "Catalog", "stac_version": "1.0.0", "id": "remote"}`))
	}))
	defer server.Close()

	fetcher := New(0)
	doc, err := fetcher.Fetch(context.Background(), server.URL+"/catalog.json")
	require.NoError(t, err)

	id, ok := doc.StringField("id")
	assert.True(t, ok)
	assert.Equal(t, "remote", id)
}

func TestFetch_HTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := New(0)
	_, err := fetcher.Fetch(context.Background(), server.URL+"/missing.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchRaw_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"$schema": "https://json-schema.org/draft/2020-12/schema"}`))
	}))
	defer server.Close()

	fetcher := New(0)
	body, err := fetcher.FetchRaw(context.Background(), server.URL+"/schema.json")
	require.NoError(t, err)
	assert.Contains(t, string(body), "json-schema.org")
}

func TestFetchRaw_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := New(0)
	_, err := fetcher.FetchRaw(ctx, server.URL+"/schema.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)
}
