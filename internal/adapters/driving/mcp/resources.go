package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

const (
	// uriScheme is the custom URI scheme for intake resources.
	uriScheme = "intake://"

	mimeJSON = "application/json"
	mimeText = "text/plain"
)

// now is replaced in tests.
var now = time.Now

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Categories != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "categories",
			Name:        "categories",
			Description: "Processed documents grouped by category",
			MIMEType:    mimeJSON,
		}, s.handleCategoriesResource)
	}

	if s.ports.Recent != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "recent",
			Name:        "recent",
			Description: "The most recently processed documents on this machine",
			MIMEType:    mimeJSON,
		}, s.handleRecentResource)
	}

	if s.ports.Document != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "documents/{documentId}",
			Name:        "document",
			Description: "Stored metadata and text of a processed document",
			MIMEType:    mimeText,
		}, s.handleDocumentResource)
	}
}

type summaryInfo struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Urgency    string `json:"urgency,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	When       string `json:"when,omitempty"`
	URI        string `json:"uri"`
}

type groupInfo struct {
	Category  string        `json:"category"`
	Label     string        `json:"label"`
	Documents []summaryInfo `json:"documents"`
}

// handleCategoriesResource refreshes and returns the category grouping.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Categories == nil {
		return jsonResult(req.Params.URI, []groupInfo{})
	}

	if err := s.ports.Categories.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	view := render.Groups(now(), s.ports.Categories.Groups())
	infos := make([]groupInfo, 0, len(view.Groups))
	for _, g := range view.Groups {
		gi := groupInfo{
			Category:  g.Key,
			Label:     g.Label,
			Documents: make([]summaryInfo, len(g.Documents)),
		}
		for i, d := range g.Documents {
			gi.Documents[i] = summaryInfo{
				DocumentID: d.DocumentID,
				Title:      d.Title,
				Urgency:    d.Urgency,
				CustomerID: d.CustomerID,
				When:       d.When,
				URI:        documentURI(d.DocumentID),
			}
		}
		infos = append(infos, gi)
	}

	return jsonResult(req.Params.URI, infos)
}

type recentInfo struct {
	DocumentID  string    `json:"document_id"`
	Category    string    `json:"category"`
	Urgency     string    `json:"urgency"`
	ProcessedAt time.Time `json:"processed_at"`
	URI         string    `json:"uri"`
}

// handleRecentResource returns the local recent-documents history,
// newest first.
func (s *Server) handleRecentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Recent == nil {
		return jsonResult(req.Params.URI, []recentInfo{})
	}

	entries := s.ports.Recent.Entries()
	infos := make([]recentInfo, len(entries))
	for i, e := range entries {
		infos[i] = recentInfo{
			DocumentID:  e.DocumentID,
			Category:    e.Category,
			Urgency:     e.Urgency.String(),
			ProcessedAt: e.ProcessedAt,
			URI:         documentURI(e.DocumentID),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleDocumentResource returns a stored document as plain text: its
// present metadata followed by a blank line and the document text.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Document.Get(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: mimeText,
			Text:     documentText(doc),
		}},
	}, nil
}

func documentText(doc *domain.DocumentDetail) string {
	var b strings.Builder
	for _, row := range render.PresentRows(doc.Metadata) {
		fmt.Fprintf(&b, "%s: %s\n", row.Label, strings.Join(row.Values, ", "))
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(render.Sanitize(doc.Text))
	return b.String()
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// documentURI is the resource URI of a stored document.
func documentURI(id string) string {
	return uriScheme + "documents/" + id
}

// extractDocumentID extracts the document ID from a URI like intake://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
