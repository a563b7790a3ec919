package domain

import (
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest accepted upload (10 MiB).
const MaxFileSize int64 = 10 * 1024 * 1024

// allowedMediaTypes is the media-type allow-list.
var allowedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"text/plain":      true,
}

// allowedExtensions mirrors allowedMediaTypes for files whose media
// type is missing or wrong.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".txt":  true,
}

// StagedFile is a candidate file held locally before submission.
// At most one exists at a time.
type StagedFile struct {
	// Name is the base file name sent to the service.
	Name string

	// Path is where the content is read from on submit.
	Path string

	// SizeBytes is the file size.
	SizeBytes int64

	// MimeHint is the declared or detected media type. May be empty.
	MimeHint string
}

// Extension returns the lower-cased file extension including the dot.
func (f StagedFile) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// IsAllowedMediaType reports whether mime (parameters ignored) is on the allow-list.
func IsAllowedMediaType(mime string) bool {
	base, _, _ := strings.Cut(mime, ";")
	return allowedMediaTypes[strings.ToLower(strings.TrimSpace(base))]
}

// IsAllowedExtension reports whether ext (e.g. ".pdf") is on the allow-list.
func IsAllowedExtension(ext string) bool {
	return allowedExtensions[strings.ToLower(ext)]
}
