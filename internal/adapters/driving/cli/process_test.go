package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

func sampleView() *render.ResultView {
	return &render.ResultView{
		DocumentID:                 "doc-42",
		CategoryKey:                "loan_applications",
		CategoryLabel:              "Loan Applications",
		CategoryIcon:               render.CategoryIcon("loan_applications"),
		Urgency:                    domain.UrgencyHigh,
		UrgencyLabel:               "High",
		Department:                 "Credit",
		Confidence:                 "93.0%",
		RequiresImmediateAttention: true,
		Metadata: []render.Row{
			{Key: "customer_id", Label: "Customer Id", Values: []string{"C-1"}},
			{Key: "account_number", Label: "Account Number", Values: []string{render.NotFound}, Missing: true},
		},
		ExtractedInfo: []render.Row{
			{Key: "amounts", Label: "Amounts", Values: []string{"1000", "2500"}},
		},
	}
}

func TestProcessCmd_RequiresFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("process")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestProcessCmd_PrintsResult(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	upload := &mockUploadService{view: sampleView()}
	uploadService = upload

	out, err := execute("process", "/tmp/letter.pdf")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/letter.pdf", upload.path)
	assert.Contains(t, out, "Document processed")
	assert.Contains(t, out, "doc-42")
	assert.Contains(t, out, "Loan Applications")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Credit")
	assert.Contains(t, out, "93.0%")
	assert.Contains(t, out, "Requires immediate attention")
	assert.Contains(t, out, "Customer Id:")
	assert.Contains(t, out, render.NotFound)
	assert.Contains(t, out, "Extracted Information")
	assert.Contains(t, out, "- 2500")
}

func TestProcessCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	uploadService = &mockUploadService{view: sampleView()}

	out, err := execute("process", "--json", "letter.pdf")

	require.NoError(t, err)
	var got processOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "doc-42", got.DocumentID)
	assert.Equal(t, "loan_applications", got.Category)
	assert.Equal(t, "high", got.Urgency)
	assert.True(t, got.RequiresImmediateAttention)
	require.Len(t, got.Metadata, 2)
	assert.True(t, got.Metadata[1].Missing)
	require.Len(t, got.ExtractedInfo, 1)
	assert.Equal(t, []string{"1000", "2500"}, got.ExtractedInfo[0].Values)
}

func TestProcessCmd_Rejected(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	uploadService = &mockUploadService{stageErr: &domain.ValidationError{
		Kind:     domain.ValidationTooLarge,
		FileName: "big.pdf",
		Size:     11 << 20,
	}}

	_, err := execute("process", "big.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot upload")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProcessCmd_SubmitFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	uploadService = &mockUploadService{submitErr: errors.New("OCR failed")}

	_, err := execute("process", "letter.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "processing failed")
	assert.Contains(t, err.Error(), "OCR failed")
}

func TestProcessCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	uploadService = nil

	_, err := execute("process", "letter.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload service not configured")
}
