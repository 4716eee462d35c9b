// Package domain defines the core business entities for stacval.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SchemaRef: The identity of a versioned STAC schema
//   - Document: A fetched STAC document with its source location
//   - LinkRef: A traversal link extracted from a catalog or collection
//   - ValidationOutcome: The result of validating one document
//   - Report: The aggregated result of a validation run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
