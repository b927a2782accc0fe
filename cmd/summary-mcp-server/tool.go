package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"cleaning-intake/internal/summary"
)

type ParseParams struct {
	Reply string `json:"reply" mcp:"full assistant reply text, possibly containing the internal summary marker"`
}

type ParseResult struct {
	HasSummary   bool            `json:"has_summary"`
	Summary      string          `json:"summary,omitempty"`
	CustomerText string          `json:"customer_text"`
	Fields       []summary.Field `json:"fields,omitempty"`
	Missing      []string        `json:"missing,omitempty"`
	Complete     bool            `json:"complete"`
}

func analyze(reply string) ParseResult {
	r := summary.Parse(reply)
	out := ParseResult{
		HasSummary:   r.HasSummary,
		Summary:      r.Summary,
		CustomerText: r.CustomerText(),
		Complete:     r.Complete(),
	}
	if r.HasSummary {
		out.Fields = r.Fields
		out.Missing = r.Missing()
	}
	return out
}

func ParseIntakeSummary(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ParseParams]) (*mcp.CallToolResultFor[any], error) {
	if params.Arguments.Reply == "" {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: "reply is required"}},
		}, nil
	}

	result := analyze(params.Arguments.Reply)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}
