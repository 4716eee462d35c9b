package services

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// ExtractLinks reads a document's link array and returns the traversal
// links (child and item relations) with targets resolved against the
// document's own location. Malformed entries are skipped and reported
// as note-severity entries rather than failing the extraction.
func ExtractLinks(doc *domain.Document) ([]domain.LinkRef, []domain.ValidationError) {
	entries, ok := doc.SliceField("links")
	if !ok {
		return nil, nil
	}

	var (
		links []domain.LinkRef
		notes []domain.ValidationError
	)
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			notes = append(notes, domain.ValidationError{
				Code:     domain.CodeMalformedLink,
				Message:  fmt.Sprintf("links[%d] is not an object", i),
				Path:     fmt.Sprintf("/links/%d", i),
				Severity: domain.SeverityNote,
			})
			continue
		}

		rel, _ := obj["rel"].(string)
		link := domain.LinkRef{Rel: rel}
		if !link.Traversable() {
			continue
		}

		href, _ := obj["href"].(string)
		if href == "" {
			notes = append(notes, domain.ValidationError{
				Code:     domain.CodeMalformedLink,
				Message:  fmt.Sprintf("links[%d] (%s) has no target", i, rel),
				Path:     fmt.Sprintf("/links/%d", i),
				Severity: domain.SeverityNote,
			})
			continue
		}

		link.Target = ResolveTarget(doc.Location, href)
		links = append(links, link)
	}

	return links, notes
}

// ResolveTarget resolves a link href against the location of the
// document that declared it. Absolute URLs pass through; relative hrefs
// are joined either as URLs or as file paths depending on the base.
// file:// references are treated as spellings of the local path: the
// scheme is stripped before any path joining.
func ResolveTarget(base, href string) string {
	if isRemote(href) {
		return href
	}
	href = strings.TrimPrefix(href, "file://")

	if isRemote(base) {
		baseURL, err := url.Parse(base)
		if err != nil {
			return href
		}
		refURL, err := url.Parse(href)
		if err != nil {
			return href
		}
		return baseURL.ResolveReference(refURL).String()
	}
	base = strings.TrimPrefix(base, "file://")

	if filepath.IsAbs(href) {
		return filepath.Clean(href)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(base), href))
}

// NormalizeLocation canonicalizes a location for visited-set identity,
// so the same document reached through differing spellings is crawled
// once. file:// locations canonicalize to the plain path, which also
// keeps them out of filepath.Clean (it would fold the scheme's double
// slash into something unreadable).
func NormalizeLocation(location string) string {
	if isRemote(location) {
		u, err := url.Parse(location)
		if err != nil {
			return location
		}
		u.Fragment = ""
		return u.String()
	}
	return filepath.Clean(strings.TrimPrefix(location, "file://"))
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
