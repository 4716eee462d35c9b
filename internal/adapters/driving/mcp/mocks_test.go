package mcp

import (
	"context"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// mockRunner is a mock implementation of driving.ValidationRunner.
type mockRunner struct {
	report    *domain.Report
	err       error
	location  string
	recursive bool
}

func (m *mockRunner) Run(_ context.Context, location string, recursive bool) (*domain.Report, error) {
	m.location = location
	m.recursive = recursive
	if m.err != nil {
		return nil, m.err
	}
	return m.report, m.err
}
