package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

func sampleDocument() *domain.DocumentDetail {
	return &domain.DocumentDetail{
		ID: "doc-7",
		Metadata: domain.Fields{
			{Key: "category", Value: "complaints"},
			{Key: "customer_id", Value: nil},
			{Key: "filename", Value: "letter.pdf"},
		},
		Text: "Dear bank,\x07 please refund.",
	}
}

func TestDocumentCmd_Alias(t *testing.T) {
	assert.Contains(t, documentCmd.Aliases, "doc")
}

func TestDocumentCmd_PrintsMetadataAndText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{doc: sampleDocument()}

	out, err := execute("document", "doc-7")

	require.NoError(t, err)
	assert.Contains(t, out, "Document doc-7")
	assert.Contains(t, out, "Category: complaints")
	assert.Contains(t, out, "Filename: letter.pdf")
	assert.NotContains(t, out, "Customer Id")
	assert.Contains(t, out, "Dear bank, please refund.")
}

func TestDocumentCmd_MetaOnly(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{doc: sampleDocument()}

	out, err := execute("document", "--meta", "doc-7")

	require.NoError(t, err)
	assert.Contains(t, out, "Filename: letter.pdf")
	assert.NotContains(t, out, "please refund")
}

func TestDocumentCmd_NoText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{doc: &domain.DocumentDetail{ID: "doc-8"}}

	out, err := execute("document", "doc-8")

	require.NoError(t, err)
	assert.Contains(t, out, "(no text stored)")
}

func TestDocumentCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{doc: sampleDocument()}

	out, err := execute("document", "--json", "doc-7")

	require.NoError(t, err)
	var got documentOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "doc-7", got.ID)
	assert.Len(t, got.Metadata, 2)
	assert.Equal(t, "Dear bank, please refund.", got.Text)
}

func TestDocumentCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{err: fmt.Errorf("get: %w", domain.ErrNotFound)}

	_, err := execute("document", "missing")

	require.Error(t, err)
	assert.Equal(t, "document missing not found", err.Error())
}

func TestDocumentCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{err: errors.New("HTTP 500")}

	_, err := execute("document", "doc-7")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get document")
}

func TestDocumentCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = nil

	_, err := execute("document", "doc-7")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document service not configured")
}
