package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationOutcome_Invalidated(t *testing.T) {
	tests := []struct {
		name   string
		errors []ValidationError
		want   bool
	}{
		{
			name: "no entries",
			want: false,
		},
		{
			name: "only warnings and notes",
			errors: []ValidationError{
				{Code: CodeTypeInferred, Severity: SeverityWarning},
				{Code: CodeMalformedLink, Severity: SeverityNote},
			},
			want: false,
		},
		{
			name: "one error among warnings",
			errors: []ValidationError{
				{Code: CodeTypeInferred, Severity: SeverityWarning},
				{Code: CodeStructural, Severity: SeverityError},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := &ValidationOutcome{Errors: tt.errors}
			assert.Equal(t, tt.want, outcome.Invalidated())
		})
	}
}
