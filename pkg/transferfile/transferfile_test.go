package transferfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfer.qrv")
	chunks := []string{"AAABAAECAw==", "AAEAAQQFBg==", "AAIAAgcICQ=="}

	size, err := Save(path, chunks)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, chunks, got)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfer.qrv")
	require.NoError(t, os.WriteFile(path, []byte("AAABAAECAw==\n\n  \nAAEAAQQFBg==\n"), 0600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAABAAECAw==", "AAEAAQQFBg=="}, got)
}

func TestLoadRejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-transfer.png")
	// PNG magic header followed by junk.
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n0123456789"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.qrv"))
	assert.Error(t, err)
}
