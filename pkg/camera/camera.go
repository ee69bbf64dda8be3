// Package camera abstracts the frame source the receiver samples during
// scanning. Real webcam capture is platform-specific and injected by the
// host build; this package defines the contract plus a portable
// directory-watching source used by the CLI and by tests.
package camera

import (
	"context"
	"image"
)

// Stream is a live frame source. Frames never blocks the producer: a frame
// that nobody is ready to read is dropped, not queued.
type Stream interface {
	// Frames yields captured frames. The channel is closed when the stream
	// stops.
	Frames() <-chan image.Image
	// Stop releases the underlying capture resources. Safe to call more
	// than once.
	Stop()
}

// Camera acquires a frame stream. Acquire fails when the device is missing
// or permission is denied.
type Camera interface {
	Acquire(ctx context.Context) (Stream, error)
}
