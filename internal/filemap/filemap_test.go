package filemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "measurements.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestOpenExposesFileContents(t *testing.T) {
	path := writeTemp(t, "Hamburg;12.0\nBulawayo;8.9\n")

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, "Hamburg;12.0\nBulawayo;8.9\n", string(m.Data()))
}

func TestOpenRejectsEmptyFile(t *testing.T) {
	path := writeTemp(t, "")

	_, err := Open(path)
	assert.Error(t, err)
}

func TestOpenRejectsMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	assert.Error(t, err)
}

func TestCloseIsSafeAfterOpen(t *testing.T) {
	path := writeTemp(t, "A;1.0\n")

	m, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, m.Close())
}

func TestCloseOnZeroValueMappingIsNoop(t *testing.T) {
	var m Mapping
	assert.NoError(t, m.Close())
}
