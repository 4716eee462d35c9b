package schemacache

import (
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/message"

	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
)

// Ensure compiledSchema implements the interface.
var _ driven.CompiledSchema = (*compiledSchema)(nil)

// compiledSchema wraps the jsonschema engine behind the CompiledSchema
// port, translating its error tree into domain validation errors.
type compiledSchema struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// Validate runs structural validation and flattens the resulting error
// tree into one entry per violated constraint, depth-first so entry
// order follows document order and stays stable across runs.
func (s *compiledSchema) Validate(instance any) []domain.ValidationError {
	err := s.schema.Validate(instance)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []domain.ValidationError{{
			Code:     domain.CodeStructural,
			Message:  err.Error(),
			Severity: domain.SeverityError,
		}}
	}

	var out []domain.ValidationError
	s.flatten(verr, &out)
	return out
}

func (s *compiledSchema) flatten(verr *jsonschema.ValidationError, out *[]domain.ValidationError) {
	if len(verr.Causes) == 0 {
		*out = append(*out, domain.ValidationError{
			Code:     domain.CodeStructural,
			Message:  verr.ErrorKind.LocalizedString(s.printer),
			Path:     jsonPointer(verr.InstanceLocation),
			Severity: domain.SeverityError,
		})
		return
	}
	for _, cause := range verr.Causes {
		s.flatten(cause, out)
	}
}

// jsonPointer renders an instance location as an RFC 6901 pointer.
// The document root renders as the empty pointer.
func jsonPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, token := range tokens {
		b.WriteByte('/')
		token = strings.ReplaceAll(token, "~", "~0")
		token = strings.ReplaceAll(token, "/", "~1")
		b.WriteString(token)
	}
	return b.String()
}
