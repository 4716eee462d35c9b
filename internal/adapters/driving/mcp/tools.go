package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// ValidateInput is the input schema for the validate tool.
type ValidateInput struct {
	Location  string `json:"location" jsonschema:"path or URL of the STAC document to validate"`
	Recursive bool   `json:"recursive,omitempty" jsonschema:"crawl child and item links and validate the whole tree"`
}

// ValidateOutput is the output schema for the validate tool.
type ValidateOutput struct {
	Total    int             `json:"total"`
	Valid    int             `json:"valid"`
	Invalid  int             `json:"invalid"`
	Complete bool            `json:"complete"`
	Outcomes []OutcomeOutput `json:"outcomes"`
}

// OutcomeOutput represents a single per-document outcome.
type OutcomeOutput struct {
	Location string        `json:"location"`
	Valid    bool          `json:"valid"`
	Version  string        `json:"version,omitempty"`
	Type     string        `json:"type,omitempty"`
	Errors   []ErrorOutput `json:"errors,omitempty"`
}

// ErrorOutput represents a single validation error entry.
type ErrorOutput struct {
	Schema   string `json:"schema,omitempty"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Severity string `json:"severity"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a STAC Item, Catalog or Collection, optionally crawling its linked tree",
	}, s.handleValidate)
}

// handleValidate handles the validate tool invocation.
func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	report, err := s.ports.Runner.Run(ctx, input.Location, input.Recursive)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	output := ValidateOutput{
		Total:    report.Total,
		Valid:    report.Valid,
		Invalid:  report.Invalid,
		Complete: report.Complete,
		Outcomes: make([]OutcomeOutput, len(report.Outcomes)),
	}

	for i := range report.Outcomes {
		output.Outcomes[i] = toOutcomeOutput(&report.Outcomes[i])
	}

	return nil, output, nil
}

func toOutcomeOutput(outcome *domain.ValidationOutcome) OutcomeOutput {
	out := OutcomeOutput{
		Location: outcome.Location,
		Valid:    outcome.Valid,
		Version:  outcome.Version,
		Type:     string(outcome.Type),
		Errors:   make([]ErrorOutput, len(outcome.Errors)),
	}
	for i, entry := range outcome.Errors {
		schema := ""
		if entry.Schema != nil {
			schema = entry.Schema.String()
		}
		out.Errors[i] = ErrorOutput{
			Schema:   schema,
			Code:     string(entry.Code),
			Message:  entry.Message,
			Path:     entry.Path,
			Severity: string(entry.Severity),
		}
	}
	return out
}
