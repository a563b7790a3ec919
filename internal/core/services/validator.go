package services

import "github.com/custodia-labs/docintake/internal/core/domain"

// Validator checks a candidate file before it is staged.
type Validator struct {
	maxSize int64
}

// NewValidator creates a validator with the default size limit.
func NewValidator() *Validator {
	return &Validator{maxSize: domain.MaxFileSize}
}

// Validate returns nil if file may be staged, else a *domain.ValidationError.
// The type is checked before the size. It has no side effects.
func (v *Validator) Validate(file domain.StagedFile) error {
	if !domain.IsAllowedMediaType(file.MimeHint) && !domain.IsAllowedExtension(file.Extension()) {
		return &domain.ValidationError{
			Kind:     domain.ValidationUnsupportedType,
			FileName: file.Name,
			Size:     file.SizeBytes,
			MimeHint: file.MimeHint,
		}
	}
	if file.SizeBytes > v.maxSize {
		return &domain.ValidationError{
			Kind:     domain.ValidationTooLarge,
			FileName: file.Name,
			Size:     file.SizeBytes,
			MimeHint: file.MimeHint,
		}
	}
	return nil
}
