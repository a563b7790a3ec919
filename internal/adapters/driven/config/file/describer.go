package file

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/logger"
)

// Ensure FileDescriber implements the interface.
var _ driven.FileDescriber = (*FileDescriber)(nil)

const octetStream = "application/octet-stream"

// FileDescriber stats local files and sniffs their media type from content.
type FileDescriber struct{}

// NewFileDescriber creates a FileDescriber.
func NewFileDescriber() *FileDescriber {
	return &FileDescriber{}
}

// Describe returns the staged-file description of path. Content sniffing
// wins over the extension; the extension is used when sniffing is inconclusive.
func (d *FileDescriber) Describe(path string) (domain.StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.StagedFile{}, fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return domain.StagedFile{}, errors.New("is a directory")
	}

	return domain.StagedFile{
		Name:      filepath.Base(path),
		Path:      path,
		SizeBytes: info.Size(),
		MimeHint:  detectMediaType(path),
	}, nil
}

func detectMediaType(path string) string {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		logger.Debug("Sniffing %s failed: %v", path, err)
	} else if !detected.Is(octetStream) {
		return baseMediaType(detected.String())
	}
	return baseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))))
}

// baseMediaType drops parameters such as charset.
func baseMediaType(m string) string {
	base, _, _ := strings.Cut(m, ";")
	return strings.TrimSpace(base)
}
