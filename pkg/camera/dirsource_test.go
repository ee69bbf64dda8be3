package camera

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFrame(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8))))
}

func TestDirSourceAcquireMissingDir(t *testing.T) {
	src := NewDirSource(filepath.Join(t.TempDir(), "nope"), 10*time.Millisecond)
	_, err := src.Acquire(context.Background())
	assert.Error(t, err)
}

func TestDirSourceYieldsNewFrames(t *testing.T) {
	dir := t.TempDir()
	writeTestFrame(t, filepath.Join(dir, "frame-001.png"))

	src := NewDirSource(dir, 10*time.Millisecond)
	stream, err := src.Acquire(context.Background())
	require.NoError(t, err)
	defer stream.Stop()

	select {
	case frame := <-stream.Frames():
		require.NotNil(t, frame)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered within 2 seconds")
	}
}

func TestDirSourceStopClosesFrames(t *testing.T) {
	dir := t.TempDir()
	src := NewDirSource(dir, 10*time.Millisecond)
	stream, err := src.Acquire(context.Background())
	require.NoError(t, err)

	stream.Stop()
	stream.Stop() // repeated stop must be safe

	select {
	case _, open := <-stream.Frames():
		assert.False(t, open, "frames channel should be closed after Stop")
	case <-time.After(2 * time.Second):
		t.Fatal("frames channel not closed within 2 seconds")
	}
}
