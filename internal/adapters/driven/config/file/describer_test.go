package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestFileDescriber_SniffsPDF(t *testing.T) {
	path := writeFile(t, "scan.bin", []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"))

	file, err := NewFileDescriber().Describe(path)

	require.NoError(t, err)
	assert.Equal(t, "scan.bin", file.Name)
	assert.Equal(t, path, file.Path)
	assert.Equal(t, "application/pdf", file.MimeHint)
	assert.Greater(t, file.SizeBytes, int64(0))
}

func TestFileDescriber_SniffsPNG(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	path := writeFile(t, "photo", png)

	file, err := NewFileDescriber().Describe(path)

	require.NoError(t, err)
	assert.Equal(t, "image/png", file.MimeHint)
}

func TestFileDescriber_TextDropsCharset(t *testing.T) {
	path := writeFile(t, "letter.txt", []byte("Sehr geehrte Damen und Herren,\nbitte ..."))

	file, err := NewFileDescriber().Describe(path)

	require.NoError(t, err)
	assert.Equal(t, "text/plain", file.MimeHint)
	assert.Equal(t, int64(len("Sehr geehrte Damen und Herren,\nbitte ...")), file.SizeBytes)
}

func TestFileDescriber_BinaryFallsBackToExtension(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe})

	file, err := NewFileDescriber().Describe(path)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.MimeHint)
}

func TestFileDescriber_UnknownBinary(t *testing.T) {
	path := writeFile(t, "blob", []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe})

	file, err := NewFileDescriber().Describe(path)

	require.NoError(t, err)
	assert.Empty(t, file.MimeHint)
}

func TestFileDescriber_Missing(t *testing.T) {
	_, err := NewFileDescriber().Describe(filepath.Join(t.TempDir(), "nope.pdf"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileDescriber_Directory(t *testing.T) {
	_, err := NewFileDescriber().Describe(t.TempDir())

	assert.Error(t, err)
}
