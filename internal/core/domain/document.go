package domain

// STACType classifies a STAC document.
type STACType string

const (
	// TypeItem is a STAC Item (a GeoJSON Feature with STAC metadata).
	TypeItem STACType = "item"

	// TypeCatalog is a STAC Catalog (a link-only hierarchy node).
	TypeCatalog STACType = "catalog"

	// TypeCollection is a STAC Collection (a catalog with extent metadata).
	TypeCollection STACType = "collection"

	// TypeUnknown means the type could not be determined.
	TypeUnknown STACType = ""
)

// Document is a fetched and parsed STAC document.
// Raw holds the decoded JSON value; the declared type, version and
// extension list may be absent or malformed, so all access goes through
// accessors that report absence explicitly instead of panicking.
type Document struct {
	// Location is the source of the document (local path or URI).
	Location string

	// Raw is the decoded JSON document.
	Raw any
}

// Object returns the document as a JSON object.
// The second return is false when the document is not an object
// (e.g. a top-level array or scalar).
func (d *Document) Object() (map[string]any, bool) {
	obj, ok := d.Raw.(map[string]any)
	return obj, ok
}

// StringField reads a top-level string field.
// Returns false when the field is absent or not a string.
func (d *Document) StringField(key string) (string, bool) {
	obj, ok := d.Object()
	if !ok {
		return "", false
	}
	val, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// SliceField reads a top-level array field.
// Returns false when the field is absent or not an array.
func (d *Document) SliceField(key string) ([]any, bool) {
	obj, ok := d.Object()
	if !ok {
		return nil, false
	}
	val, ok := obj[key]
	if !ok {
		return nil, false
	}
	arr, ok := val.([]any)
	return arr, ok
}

// HasField reports whether a top-level field is present, regardless of type.
func (d *Document) HasField(key string) bool {
	obj, ok := d.Object()
	if !ok {
		return false
	}
	_, ok = obj[key]
	return ok
}
