package domain

import "errors"

// Domain errors represent validation pipeline failures.
// These are distinct from infrastructure errors and are matched
// with errors.Is to classify outcomes.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrFetch indicates a document or schema could not be retrieved
	// (network failure, non-2xx response, unreadable file).
	ErrFetch = errors.New("fetch failed")

	// ErrParse indicates retrieved content is not valid JSON.
	ErrParse = errors.New("parse failed")

	// ErrUnresolvableVersion indicates a document declares no usable
	// stac_version, so no schema set can be derived for it.
	ErrUnresolvableVersion = errors.New("unresolvable STAC version")

	// ErrSchemaUnavailable indicates a required schema could not be
	// obtained or compiled.
	ErrSchemaUnavailable = errors.New("schema unavailable")

	// ErrCrawlRunning indicates a crawl is already in progress on
	// this orchestrator.
	ErrCrawlRunning = errors.New("crawl already running")
)
