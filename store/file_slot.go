package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const checksumSuffix = ".checksum"

// FileSlot stores each key as a file under a base directory, with a SHA-256
// sidecar checksum to detect corruption. Writes go through a temp file and an
// atomic rename so a reader never observes a partial write.
type FileSlot struct {
	fs  afero.Fs
	dir string
}

// NewFileSlot creates the base directory if needed and returns a slot backed
// by it.
func NewFileSlot(filesystem afero.Fs, dir string) (*FileSlot, error) {
	if dir == "" {
		return nil, fmt.Errorf("file slot directory must not be empty")
	}
	if err := filesystem.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create slot directory %s: %w", dir, err)
	}
	return &FileSlot{fs: filesystem, dir: dir}, nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

func (s *FileSlot) path(key string) string {
	return filepath.Join(s.dir, key)
}

// Read returns the slot content after verifying it against the sidecar
// checksum. A data file without a checksum file is accepted as-is; the next
// Write creates the sidecar.
func (s *FileSlot) Read(key string) ([]byte, error) {
	path := s.path(key)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}

	checksumPath := path + checksumSuffix
	expected, err := afero.ReadFile(s.fs, checksumPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return data, nil
		}
		return nil, fmt.Errorf("failed to read checksum for slot %s: %w", key, err)
	}

	if actual := calculateChecksum(data); actual != strings.TrimSpace(string(expected)) {
		return nil, fmt.Errorf("checksum mismatch for slot %s: %w", key, ErrSlotCorrupt)
	}
	return data, nil
}

// Write replaces the slot content atomically: data and checksum are written
// to temp files first, then renamed into place, data file before checksum.
func (s *FileSlot) Write(key string, data []byte) error {
	path := s.path(key)
	checksumPath := path + checksumSuffix
	tmpPath := path + ".tmp"
	tmpChecksumPath := checksumPath + ".tmp"

	defer func() { _ = s.fs.Remove(tmpPath) }()
	defer func() { _ = s.fs.Remove(tmpChecksumPath) }()

	if err := afero.WriteFile(s.fs, tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file for slot %s: %w", key, err)
	}
	if err := afero.WriteFile(s.fs, tmpChecksumPath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum for slot %s: %w", key, err)
	}

	if err := s.fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace slot %s: %w", key, err)
	}
	if err := s.fs.Rename(tmpChecksumPath, checksumPath); err != nil {
		return fmt.Errorf("slot %s updated but checksum update failed: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileSlot) Close() error {
	return nil
}
