// Package schemaregistry derives the canonical source URL for a schema
// ref. Core schemas live on schemas.stacspec.org under a
// version-templated path; versions predating the 1.0.0 release cycle
// are only served by the staclint CDN, as are shorthand-named
// extensions. URL templates are configurable so tests and mirrors can
// redirect resolution without touching process-wide state.
package schemaregistry

import (
	"fmt"
	"strings"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// Default URL templates. Core takes (version, type, type); legacy takes
// (version, type); extension takes (version, name).
const (
	DefaultCoreURL      = "https://schemas.stacspec.org/v%s/%s-spec/json-schema/%s.json"
	DefaultLegacyURL    = "https://cdn.staclint.com/v%s/%s.json"
	DefaultExtensionURL = "https://cdn.staclint.com/v%s/extension/%s.json"
)

// Config overrides the URL templates. Empty fields keep the defaults.
type Config struct {
	CoreURL      string
	LegacyURL    string
	ExtensionURL string
}

// Registry maps schema refs to fetchable URLs.
type Registry struct {
	core      string
	legacy    string
	extension string
}

// New creates a registry with the given template overrides.
func New(cfg Config) *Registry {
	r := &Registry{
		core:      cfg.CoreURL,
		legacy:    cfg.LegacyURL,
		extension: cfg.ExtensionURL,
	}
	if r.core == "" {
		r.core = DefaultCoreURL
	}
	if r.legacy == "" {
		r.legacy = DefaultLegacyURL
	}
	if r.extension == "" {
		r.extension = DefaultExtensionURL
	}
	return r
}

// Endpoint returns the URL (or local path, for custom schemas) the
// ref's schema body is fetched from. The derivation is deterministic:
// the same ref always maps to the same location.
func (r *Registry) Endpoint(ref domain.SchemaRef) (string, error) {
	switch ref.Type {
	case domain.SchemaCustom:
		if ref.Extension == "" {
			return "", fmt.Errorf("custom schema ref has no location")
		}
		return ref.Extension, nil

	case domain.SchemaExtension:
		if ref.Extension == "" {
			return "", fmt.Errorf("extension ref has no name")
		}
		if isURL(ref.Extension) {
			return ref.Extension, nil
		}
		version := ref.Version
		// The CDN never published 1.0.0-beta.2 extension schemas;
		// beta.1 is the closest published set.
		if version == "1.0.0-beta.2" {
			version = "1.0.0-beta.1"
		}
		return fmt.Sprintf(r.extension, version, ref.Extension), nil

	case domain.SchemaItem, domain.SchemaCatalog, domain.SchemaCollection:
		if ref.Version == "" {
			return "", fmt.Errorf("core ref %s has no version", ref.Type)
		}
		if legacyVersion(ref.Version) {
			return fmt.Sprintf(r.legacy, ref.Version, ref.Type), nil
		}
		return fmt.Sprintf(r.core, ref.Version, ref.Type, ref.Type), nil

	default:
		return "", fmt.Errorf("unknown schema type %q", ref.Type)
	}
}

// legacyVersion reports whether a STAC version predates the
// schemas.stacspec.org layout.
func legacyVersion(version string) bool {
	return strings.HasPrefix(version, "0.") ||
		version == "1.0.0-beta.1" ||
		version == "1.0.0-beta.2"
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
