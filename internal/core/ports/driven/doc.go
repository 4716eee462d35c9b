// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentFetcher: Retrieves and parses STAC documents
//   - SchemaStore: Resolves schema refs to compiled schemas, caching them
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SchemaBlobStore: On-disk persistence of fetched schema bodies.
//     Without it, every process starts with a cold schema cache.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
