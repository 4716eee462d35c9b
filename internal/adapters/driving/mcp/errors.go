// Package mcp provides an MCP (Model Context Protocol) server adapter
// for stacval. It lets AI assistants validate STAC documents and
// catalog trees through the validation runner.
package mcp

import "errors"

// ErrMissingRunner is returned when the validation runner is not provided.
var ErrMissingRunner = errors.New("mcp: validation runner is required")
