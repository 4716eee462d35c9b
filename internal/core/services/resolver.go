package services

import (
	"fmt"
	"strings"

	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driving"
)

// DetectType determines the STAC type of a document.
//
// A declared "type" field wins: Items carry "Feature" (they are GeoJSON
// features), catalogs and collections carry their own names. When the
// field is absent or unrecognized the type is inferred from shape:
// geometry+properties implies Item, extent implies Collection, anything
// else is treated as a Catalog. The second return is true when the type
// was inferred rather than declared.
func DetectType(doc *domain.Document) (domain.STACType, bool) {
	if declared, ok := doc.StringField("type"); ok {
		switch strings.ToLower(declared) {
		case "feature", "item":
			return domain.TypeItem, false
		case "catalog":
			return domain.TypeCatalog, false
		case "collection":
			return domain.TypeCollection, false
		}
	}

	if doc.HasField("geometry") && doc.HasField("properties") {
		return domain.TypeItem, true
	}
	if doc.HasField("extent") {
		return domain.TypeCollection, true
	}
	return domain.TypeCatalog, true
}

// ResolveSchemaSet derives the ordered list of schema refs a document
// must pass: the core ref for its type and version first, then one ref
// per declared extension in declaration order. The order is stable so
// reports are reproducible.
//
// Malformed extension declarations produce warning entries instead of
// aborting resolution. The only hard failure is a missing stac_version,
// returned as an error wrapping domain.ErrUnresolvableVersion.
func ResolveSchemaSet(doc *domain.Document, opts driving.ValidateOptions) ([]domain.SchemaRef, []domain.ValidationError, error) {
	// A custom schema replaces the whole derived set.
	if opts.CustomSchema != "" {
		return []domain.SchemaRef{{Type: domain.SchemaCustom, Extension: opts.CustomSchema}}, nil, nil
	}

	version := opts.VersionOverride
	if version == "" {
		declared, ok := doc.StringField("stac_version")
		if !ok {
			return nil, nil, fmt.Errorf("%w: document declares no stac_version", domain.ErrUnresolvableVersion)
		}
		version = declared
	}

	var notes []domain.ValidationError

	stacType, inferred := DetectType(doc)
	if inferred {
		notes = append(notes, domain.ValidationError{
			Code:     domain.CodeTypeInferred,
			Message:  fmt.Sprintf("no usable type field; inferred %s from document shape", stacType),
			Severity: domain.SeverityWarning,
		})
	}

	refs := []domain.SchemaRef{domain.CoreRef(stacType, version)}

	if opts.CoreOnly {
		return refs, notes, nil
	}

	declared, ok := doc.SliceField("stac_extensions")
	if !ok {
		return refs, notes, nil
	}

	for i, entry := range declared {
		name, ok := entry.(string)
		if !ok || name == "" {
			notes = append(notes, domain.ValidationError{
				Code:     domain.CodeExtensionUnresolved,
				Message:  fmt.Sprintf("stac_extensions[%d] is not a schema name or URI", i),
				Path:     fmt.Sprintf("/stac_extensions/%d", i),
				Severity: domain.SeverityWarning,
			})
			continue
		}
		refs = append(refs, domain.SchemaRef{
			Type:      domain.SchemaExtension,
			Version:   version,
			Extension: normalizeExtension(name),
		})
	}

	return refs, notes, nil
}

// normalizeExtension fixes historical shorthand names. Older documents
// declare the projection extension as "proj", which no registry serves.
func normalizeExtension(name string) string {
	if name == "proj" {
		return "projection"
	}
	return name
}
