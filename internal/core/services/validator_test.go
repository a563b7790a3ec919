package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		file     domain.StagedFile
		wantKind domain.ValidationKind
	}{
		{
			name: "pdf by media type",
			file: domain.StagedFile{Name: "scan", SizeBytes: 1024, MimeHint: "application/pdf"},
		},
		{
			name: "text with charset parameter",
			file: domain.StagedFile{Name: "letter", SizeBytes: 10, MimeHint: "text/plain; charset=utf-8"},
		},
		{
			name: "extension rescues missing media type",
			file: domain.StagedFile{Name: "photo.JPG", SizeBytes: 10},
		},
		{
			name: "exactly at the limit",
			file: domain.StagedFile{Name: "big.pdf", SizeBytes: domain.MaxFileSize},
		},
		{
			name:     "one byte over the limit",
			file:     domain.StagedFile{Name: "big.pdf", SizeBytes: domain.MaxFileSize + 1},
			wantKind: domain.ValidationTooLarge,
		},
		{
			name:     "unsupported type",
			file:     domain.StagedFile{Name: "archive.zip", SizeBytes: 10, MimeHint: "application/zip"},
			wantKind: domain.ValidationUnsupportedType,
		},
		{
			name:     "type checked before size",
			file:     domain.StagedFile{Name: "huge.exe", SizeBytes: 50 << 20},
			wantKind: domain.ValidationUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.file)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantKind, ve.Kind)
		})
	}
}
