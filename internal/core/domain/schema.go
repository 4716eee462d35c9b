package domain

import "fmt"

// SchemaType identifies which class of schema a SchemaRef points at.
type SchemaType string

const (
	// SchemaItem is the core schema for STAC Items.
	SchemaItem SchemaType = "item"

	// SchemaCatalog is the core schema for STAC Catalogs.
	SchemaCatalog SchemaType = "catalog"

	// SchemaCollection is the core schema for STAC Collections.
	SchemaCollection SchemaType = "collection"

	// SchemaExtension is a community extension schema declared by a document.
	SchemaExtension SchemaType = "extension"

	// SchemaCustom is a user-supplied schema that replaces the derived set.
	SchemaCustom SchemaType = "custom"
)

// SchemaRef identifies a single schema to validate against.
// It is an immutable value type; two refs are equal iff all fields match.
// The ref is the cache key for compiled schemas, so it must be cheap to
// compare and stable to print.
type SchemaRef struct {
	// Type is the schema class (core type, extension or custom).
	Type SchemaType `json:"type"`

	// Version is the STAC version the schema belongs to ("1.0.0").
	// Empty for custom schemas.
	Version string `json:"version,omitempty"`

	// Extension is the extension shorthand name ("projection") or the
	// declared absolute schema URI. Empty for core refs.
	Extension string `json:"extension,omitempty"`
}

// CoreRef builds the core schema ref for a document type and version.
func CoreRef(t STACType, version string) SchemaRef {
	return SchemaRef{Type: SchemaType(t), Version: version}
}

// IsExtension reports whether the ref points at an extension schema.
func (r SchemaRef) IsExtension() bool {
	return r.Type == SchemaExtension
}

// Key returns the cache key for this ref. Distinct refs produce
// distinct keys.
func (r SchemaRef) Key() string {
	if r.Extension == "" {
		return fmt.Sprintf("%s@%s", r.Type, r.Version)
	}
	return fmt.Sprintf("%s@%s#%s", r.Type, r.Version, r.Extension)
}

// String returns a human-readable form used in error messages.
func (r SchemaRef) String() string {
	switch r.Type {
	case SchemaExtension:
		return fmt.Sprintf("extension %s (STAC %s)", r.Extension, r.Version)
	case SchemaCustom:
		return fmt.Sprintf("custom schema %s", r.Extension)
	default:
		if r.Version == "" {
			return string(r.Type)
		}
		return fmt.Sprintf("%s (STAC %s)", r.Type, r.Version)
	}
}
