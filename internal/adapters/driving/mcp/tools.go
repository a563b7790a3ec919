package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"natural language description of the documents to find"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default from settings)"`
	Category string `json:"category,omitempty" jsonschema:"restrict results to one category key, e.g. complaints"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID  string  `json:"document_id"`
	Category    string  `json:"category,omitempty"`
	Similarity  float64 `json:"similarity"`
	Match       string  `json:"match"`
	TextPreview string  `json:"text_preview,omitempty"`
	URI         string  `json:"uri"`
}

// StatsInput is the (empty) input schema for the collection_stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the collection_stats tool.
type StatsOutput struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
}

// errNoHealthService is returned by collection_stats when no health
// service is wired.
var errNoHealthService = errors.New("collection statistics are not available")

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Semantic search across all processed documents",
	}, s.handleSearch)

	if s.ports.Health != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "collection_stats",
			Description: "Number of documents stored by the classification service",
		}, s.handleStats)
	}
}

// handleSearch handles the search tool invocation. Result order is the
// service's ranking.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{Limit: input.Limit, Category: input.Category}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	hits := render.SearchHits(results)
	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID:  results[i].DocumentID,
			Category:    results[i].Category,
			Similarity:  results[i].Similarity,
			Match:       hits[i].Similarity,
			TextPreview: render.Sanitize(results[i].TextPreview),
			URI:         documentURI(results[i].DocumentID),
		}
	}

	return nil, output, nil
}

// handleStats handles the collection_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	if s.ports.Health == nil {
		return nil, StatsOutput{}, errNoHealthService
	}
	stats, err := s.ports.Health.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, StatsOutput{Collection: stats.Collection, Count: stats.Count}, nil
}
