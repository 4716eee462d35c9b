package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// checkLinks probes every link target for reachability, regardless of
// relation type. Diagnostic only: failures are warnings and never
// invalidate the document.
func (s *ValidationService) checkLinks(ctx context.Context, doc *domain.Document) []domain.ValidationError {
	entries, ok := doc.SliceField("links")
	if !ok {
		return nil
	}

	var out []domain.ValidationError
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		href, _ := obj["href"].(string)
		if href == "" {
			out = append(out, domain.ValidationError{
				Code:     domain.CodeMalformedLink,
				Message:  fmt.Sprintf("links[%d] has no href to check", i),
				Path:     fmt.Sprintf("/links/%d", i),
				Severity: domain.SeverityWarning,
			})
			continue
		}
		if entry := s.probe(ctx, doc.Location, href, domain.CodeLinkUnreachable, fmt.Sprintf("/links/%d/href", i)); entry != nil {
			out = append(out, *entry)
		}
	}
	return out
}

// checkAssets probes every asset href for reachability. Assets are
// visited in name order so the diagnostics are deterministic.
func (s *ValidationService) checkAssets(ctx context.Context, doc *domain.Document) []domain.ValidationError {
	obj, ok := doc.Object()
	if !ok {
		return nil
	}
	assets, ok := obj["assets"].(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(assets))
	for name := range assets {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []domain.ValidationError
	for _, name := range names {
		path := "/assets/" + name
		asset, ok := assets[name].(map[string]any)
		if !ok {
			out = append(out, domain.ValidationError{
				Code:     domain.CodeMalformedAsset,
				Message:  fmt.Sprintf("asset %q is not an object", name),
				Path:     path,
				Severity: domain.SeverityWarning,
			})
			continue
		}
		href, _ := asset["href"].(string)
		if href == "" {
			out = append(out, domain.ValidationError{
				Code:     domain.CodeMalformedAsset,
				Message:  fmt.Sprintf("asset %q has no href", name),
				Path:     path,
				Severity: domain.SeverityWarning,
			})
			continue
		}
		if entry := s.probe(ctx, doc.Location, href, domain.CodeAssetUnreachable, path+"/href"); entry != nil {
			out = append(out, *entry)
		}
	}
	return out
}

// probe checks that a single href is well-formed and fetchable,
// resolved against the owning document's location. A parse failure
// counts as reachable; assets are routinely binary.
func (s *ValidationService) probe(ctx context.Context, base, href string, code domain.ErrorCode, path string) *domain.ValidationError {
	if isRemote(href) {
		u, err := url.Parse(href)
		if err != nil || u.Host == "" {
			return &domain.ValidationError{
				Code:     code,
				Message:  fmt.Sprintf("%s is not a valid URL", href),
				Path:     path,
				Severity: domain.SeverityWarning,
			}
		}
	}

	target := ResolveTarget(base, href)
	if _, err := s.fetcher.Fetch(ctx, target); err != nil && !errors.Is(err, domain.ErrParse) {
		return &domain.ValidationError{
			Code:     code,
			Message:  fmt.Sprintf("%s is unreachable: %v", target, err),
			Path:     path,
			Severity: domain.SeverityWarning,
		}
	}
	return nil
}
