package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DiskStore implements IRecordingStore on the local filesystem. It stands
// in for S3 in development environments where no identity pool is
// configured, keeping the same timestamped key scheme.
type DiskStore struct {
	log  *slog.Logger
	root string
	now  func() time.Time
}

// NewDiskStore creates a store rooted at dir.
// The directory is created (with parents) if it does not already exist.
func NewDiskStore(log *slog.Logger, dir string) (*DiskStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating recording directory: %w", err)
	}
	return &DiskStore{log: log, root: abs, now: time.Now}, nil
}

// Upload copies the file under a generated recording key and returns the
// absolute destination path. The content type is recorded only in the log;
// the filesystem has nowhere to keep it.
func (d *DiskStore) Upload(_ context.Context, path, contentType string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening upload source: %w", err)
	}
	defer src.Close()

	dest := filepath.Join(d.root, recordingKey(d.now()))
	dst, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating recording file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dest)
		return "", fmt.Errorf("copying recording: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("closing recording file: %w", err)
	}

	d.log.Info("recording stored on disk", "location", dest, "content_type", contentType)
	return dest, nil
}

// Compile-time interface check.
var _ IRecordingStore = (*DiskStore)(nil)
