package driven

import "github.com/custodia-labs/docintake/internal/core/domain"

// FileDescriber inspects a local file without reading it fully.
type FileDescriber interface {
	// Describe returns name, size and detected media type for path.
	Describe(path string) (domain.StagedFile, error)
}
