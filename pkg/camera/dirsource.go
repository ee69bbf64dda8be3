package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DirSource treats a directory of captured image files as a camera: every
// poll it decodes files it has not seen yet and offers them as frames.
// Platform builds that have a real webcam swap in their own Camera.
type DirSource struct {
	dir      string
	interval time.Duration
}

// NewDirSource watches dir for new PNG or JPEG frames at the given poll
// interval.
func NewDirSource(dir string, interval time.Duration) *DirSource {
	return &DirSource{dir: dir, interval: interval}
}

var _ Camera = (*DirSource)(nil)

// Acquire implements Camera. It fails when the directory is missing or
// unreadable, which is this source's equivalent of a denied camera.
func (d *DirSource) Acquire(ctx context.Context) (Stream, error) {
	info, err := os.Stat(d.dir)
	if err != nil {
		return nil, fmt.Errorf("frame directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("frame path %s is not a directory", d.dir)
	}

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	s := &dirStream{
		frames: make(chan image.Image, 1),
		cancel: cancel,
		group:  g,
	}
	g.Go(func() error {
		return s.poll(ctx, d.dir, d.interval)
	})
	return s, nil
}

type dirStream struct {
	frames   chan image.Image
	cancel   context.CancelFunc
	group    *errgroup.Group
	stopOnce sync.Once
}

func (s *dirStream) Frames() <-chan image.Image { return s.frames }

// Stop cancels the poller and waits for it to exit, so no frame arrives
// after Stop returns.
func (s *dirStream) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if err := s.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("Frame poller exited with error", "error", err)
		}
	})
}

func (s *dirStream) poll(ctx context.Context, dir string, interval time.Duration) error {
	defer close(s.frames)
	seen := make(map[string]bool)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, path := range newFrameFiles(dir, seen) {
				img, err := loadImage(path)
				if err != nil {
					slog.Debug("Skipping unreadable frame file", "path", path, "error", err)
					continue
				}
				select {
				case s.frames <- img:
				case <-ctx.Done():
					return ctx.Err()
				default:
					// Receiver not ready; drop the frame.
				}
			}
		}
	}
}

func newFrameFiles(dir string, seen map[string]bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var fresh []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".png", ".jpg", ".jpeg":
		default:
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !seen[path] {
			seen[path] = true
			fresh = append(fresh, path)
		}
	}
	sort.Strings(fresh)
	return fresh
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
