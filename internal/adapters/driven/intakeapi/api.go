package intakeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
)

// processResponse is the /process-document success body.
type processResponse struct {
	DocumentID                 string          `json:"document_id"`
	Category                   string          `json:"category"`
	Urgency                    string          `json:"urgency"`
	Department                 string          `json:"department"`
	RequiresImmediateAttention bool            `json:"requires_immediate_attention"`
	ConfidenceScore            float64         `json:"confidence_score"`
	ExtractedInfo              json.RawMessage `json:"extracted_info"`
	Metadata                   json.RawMessage `json:"metadata"`
	Alerts                     []string        `json:"alerts"`
}

// ProcessDocument uploads file as multipart field "file".
func (c *Client) ProcessDocument(ctx context.Context, file domain.StagedFile) (*domain.ProcessResult, error) {
	const op = "process-document"

	body, contentType, err := multipartBody(file)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	req, err := c.newRequest(ctx, op, http.MethodPost, "/process-document", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	data, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var resp processResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError(op, err)
	}
	metadata, err := decodeFields(resp.Metadata)
	if err != nil {
		return nil, decodeError(op, fmt.Errorf("metadata: %w", err))
	}
	extracted, err := decodeFields(resp.ExtractedInfo)
	if err != nil {
		return nil, decodeError(op, fmt.Errorf("extracted_info: %w", err))
	}

	return &domain.ProcessResult{
		DocumentID:                 resp.DocumentID,
		Category:                   resp.Category,
		Urgency:                    domain.UrgencyLevel(resp.Urgency),
		Department:                 resp.Department,
		ConfidenceScore:            resp.ConfidenceScore,
		RequiresImmediateAttention: resp.RequiresImmediateAttention,
		Metadata:                   metadata,
		ExtractedInfo:              extracted,
		Alerts:                     resp.Alerts,
	}, nil
}

// multipartBody reads the staged file into a multipart form. Files are
// capped at domain.MaxFileSize so buffering is bounded.
func multipartBody(file domain.StagedFile) (io.Reader, string, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.MimeHint
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, io.LimitReader(f, domain.MaxFileSize+1)); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", file.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// searchResponse is the /search-documents success body.
type searchResponse struct {
	Results []struct {
		DocumentID  string         `json:"document_id"`
		TextPreview string         `json:"text_preview"`
		Similarity  float64        `json:"similarity"`
		Metadata    map[string]any `json:"metadata"`
	} `json:"results"`
}

// Search runs a semantic query. Results are returned in server order.
func (c *Client) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	const op = "search-documents"

	params := url.Values{}
	params.Set("query", query)
	if opts.Limit > 0 {
		params.Set("n_results", strconv.Itoa(opts.Limit))
	}
	if opts.Category != "" {
		params.Set("category", opts.Category)
	}

	req, err := c.newRequest(ctx, op, http.MethodGet, "/search-documents?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	data, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError(op, err)
	}

	results := make([]domain.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, domain.SearchResult{
			DocumentID:  r.DocumentID,
			Similarity:  r.Similarity,
			TextPreview: r.TextPreview,
			Category:    stringValue(r.Metadata["category"]),
		})
	}
	return results, nil
}

// summaryPayload is one document in the category grouping.
type summaryPayload struct {
	DocumentID  string `json:"document_id"`
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Urgency     string `json:"urgency"`
	CustomerID  string `json:"customer_id"`
	ProcessedAt string `json:"processed_at"`
}

// DocumentsByCategory returns the grouping in server key order.
func (c *Client) DocumentsByCategory(ctx context.Context) (domain.CategoryGroups, error) {
	const op = "documents-by-category"

	req, err := c.newRequest(ctx, op, http.MethodGet, "/documents-by-category", nil)
	if err != nil {
		return nil, err
	}
	data, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError(op, err)
	}
	keys, values, err := orderedRaw(resp.Categories)
	if err != nil {
		return nil, decodeError(op, err)
	}

	groups := make(domain.CategoryGroups, 0, len(keys))
	for i, key := range keys {
		var docs []summaryPayload
		if err := json.Unmarshal(values[i], &docs); err != nil {
			return nil, decodeError(op, fmt.Errorf("category %q: %w", key, err))
		}
		group := domain.CategoryGroup{Key: key, Documents: make([]domain.DocumentSummary, 0, len(docs))}
		for _, d := range docs {
			id := d.DocumentID
			if id == "" {
				id = d.ID
			}
			group.Documents = append(group.Documents, domain.DocumentSummary{
				DocumentID:  id,
				Filename:    d.Filename,
				Urgency:     domain.UrgencyLevel(d.Urgency),
				CustomerID:  d.CustomerID,
				ProcessedAt: parseTimestamp(d.ProcessedAt),
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// GetDocument fetches one stored document.
func (c *Client) GetDocument(ctx context.Context, id string) (*domain.DocumentDetail, error) {
	const op = "document"

	req, err := c.newRequest(ctx, op, http.MethodGet, "/document/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	data, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		ID       string          `json:"id"`
		Document *string         `json:"document"`
		Metadata json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError(op, err)
	}
	metadata, err := decodeFields(resp.Metadata)
	if err != nil {
		return nil, decodeError(op, fmt.Errorf("metadata: %w", err))
	}

	doc := &domain.DocumentDetail{ID: resp.ID, Metadata: metadata}
	if doc.ID == "" {
		doc.ID = id
	}
	if resp.Document != nil {
		doc.Text = *resp.Document
	}
	return doc, nil
}

// chatPayload is the /chat request body.
type chatPayload struct {
	Query       string        `json:"query"`
	ChatHistory []chatMessage `json:"chat_history"`
	DocumentID  string        `json:"document_id,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat sends one assistant turn.
func (c *Client) Chat(ctx context.Context, in driven.ChatRequest) (string, error) {
	const op = "chat"

	payload := chatPayload{
		Query:       in.Query,
		ChatHistory: make([]chatMessage, 0, len(in.History)),
		DocumentID:  in.DocumentID,
	}
	for _, m := range in.History {
		payload.ChatHistory = append(payload.ChatHistory, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", &domain.TransportError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := c.newRequest(ctx, op, http.MethodPost, "/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(op, req)
	if err != nil {
		return "", err
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", decodeError(op, err)
	}
	return resp.Response, nil
}

// Health calls /api/health.
func (c *Client) Health(ctx context.Context) (*domain.Health, error) {
	const op = "health"

	req, err := c.newRequest(ctx, op, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}
	data, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError(op, err)
	}
	return &domain.Health{Status: resp.Status, Service: resp.Service}, nil
}

// Stats reads /api/admin/collection-stats.
func (c *Client) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	const op = "collection-stats"

	req, err := c.newRequest(ctx, op, http.MethodGet, "/api/admin/collection-stats", nil)
	if err != nil {
		return nil, err
	}
	data, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Collection string `json:"collection"`
		Count      int    `json:"count"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError(op, err)
	}
	return &domain.CollectionStats{Collection: resp.Collection, Count: resp.Count}, nil
}
