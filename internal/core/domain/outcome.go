package domain

import "time"

// Severity grades a validation error entry.
type Severity string

const (
	// SeverityError marks an entry that makes the document invalid.
	SeverityError Severity = "error"

	// SeverityWarning marks a best-effort note that does not affect
	// validity (inferred type, lenient extension failures).
	SeverityWarning Severity = "warning"

	// SeverityNote marks informational entries such as skipped
	// malformed links.
	SeverityNote Severity = "note"
)

// ErrorCode classifies a validation error entry.
type ErrorCode string

const (
	// CodeStructural is a schema constraint violation.
	CodeStructural ErrorCode = "structural"

	// CodeSchemaUnavailable means a required schema could not be
	// fetched or compiled. Validity is unknowable, which counts as
	// invalid unless lenient extension handling applies.
	CodeSchemaUnavailable ErrorCode = "schema-unavailable"

	// CodeExtensionUnresolved means a declared extension entry was
	// malformed and no schema ref could be derived from it.
	CodeExtensionUnresolved ErrorCode = "extension-unresolved"

	// CodeFetch means the document itself could not be fetched.
	CodeFetch ErrorCode = "fetch-error"

	// CodeParse means the document was fetched but is not valid JSON.
	CodeParse ErrorCode = "parse-error"

	// CodeVersion means no usable stac_version was declared.
	CodeVersion ErrorCode = "unresolvable-version"

	// CodeTypeInferred notes that the document type was inferred from
	// its shape rather than read from a declared type field.
	CodeTypeInferred ErrorCode = "type-inferred"

	// CodeMalformedLink notes a link entry that was skipped during
	// traversal because it had no usable target.
	CodeMalformedLink ErrorCode = "malformed-link"

	// CodeLinkUnreachable notes a link target that failed a
	// reachability check.
	CodeLinkUnreachable ErrorCode = "link-unreachable"

	// CodeAssetUnreachable notes an asset href that failed a
	// reachability check.
	CodeAssetUnreachable ErrorCode = "asset-unreachable"

	// CodeMalformedAsset notes an asset entry with no usable href.
	CodeMalformedAsset ErrorCode = "malformed-asset"
)

// ValidationError is one problem found while validating a document.
type ValidationError struct {
	// Schema is the ref the error originated from, when one applies.
	Schema *SchemaRef `json:"schema,omitempty"`

	// Code classifies the error.
	Code ErrorCode `json:"code"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Path is the JSON pointer to the offending value, when known.
	Path string `json:"path,omitempty"`

	// Severity grades the entry; only SeverityError affects validity.
	Severity Severity `json:"severity"`
}

// ValidationOutcome is the result of validating one document.
// One outcome is recorded per location visited, including locations
// that failed before structural validation could run. Immutable once
// recorded by the aggregator.
type ValidationOutcome struct {
	// Location is the document's source location.
	Location string `json:"location"`

	// Valid is true iff no error-severity entries were recorded.
	Valid bool `json:"valid"`

	// Version is the STAC version the document was validated against.
	Version string `json:"version,omitempty"`

	// Type is the detected document type.
	Type STACType `json:"type,omitempty"`

	// Checked lists every schema ref checked, core first, then
	// extensions in declared order.
	Checked []SchemaRef `json:"schemas_checked,omitempty"`

	// Errors holds every entry recorded, in a deterministic order:
	// resolution notes first, then violations in schema-set order,
	// then link and asset reachability diagnostics.
	Errors []ValidationError `json:"errors,omitempty"`
}

// Invalidated reports whether any recorded entry has error severity.
func (o *ValidationOutcome) Invalidated() bool {
	for i := range o.Errors {
		if o.Errors[i].Severity == SeverityError {
			return true
		}
	}
	return false
}

// Report is the aggregated result of a validation run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock time the run took.
	Duration time.Duration `json:"duration_ns"`

	// Total is the number of locations visited.
	Total int `json:"total"`

	// Valid is the number of valid documents.
	Valid int `json:"valid"`

	// Invalid is the number of invalid documents.
	Invalid int `json:"invalid"`

	// Complete is false when the run was cancelled or stopped early,
	// meaning the outcome list covers only part of the tree.
	Complete bool `json:"complete"`

	// Outcomes holds per-document detail, sorted by location.
	Outcomes []ValidationOutcome `json:"outcomes"`
}
