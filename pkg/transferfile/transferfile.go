// Package transferfile persists a prepared chunk list as a plain text file,
// one chunk string per line, as the camera-free alternative to scanning.
package transferfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Save writes the ordered chunk list to path and returns the file size in
// bytes. The chunks are written verbatim and in order.
func Save(path string, chunks []string) (int64, error) {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	data := []byte(b.String())
	if err := os.WriteFile(path, data, 0600); err != nil {
		return 0, fmt.Errorf("failed to write transfer file: %w", err)
	}
	return int64(len(data)), nil
}

// Load reads a transfer file back into the same ordered chunk list. It
// rejects files that are not plain text before reading them, so pointing
// the loader at an arbitrary binary fails early with a clear message.
func Load(path string) ([]string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transfer file: %w", err)
	}
	if !mtype.Is("text/plain") {
		return nil, fmt.Errorf("%s is not a transfer file (detected %s)", path, mtype)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transfer file: %w", err)
	}
	defer f.Close()

	var chunks []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			chunks = append(chunks, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transfer file: %w", err)
	}
	return chunks, nil
}
