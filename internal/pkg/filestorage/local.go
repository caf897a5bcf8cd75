package filestorage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// LocalStorage keeps files below a root directory on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the root directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// SaveBytes writes data to basePath/subPath/<uuid><ext>
func (ls *LocalStorage) SaveBytes(subPath, filename string, data []byte) (*StoredFile, error) {
	if strings.Contains(subPath, "..") {
		return nil, fmt.Errorf("invalid storage path %q", subPath)
	}

	dir := filepath.Join(ls.basePath, subPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	unique := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	dst := filepath.Join(dir, unique)

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		_ = os.Remove(dst)
		logger.Error().Err(err).Str("path", dst).Msg("Failed to write file")
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join(subPath, unique))
	logger.Debug().Str("filename", filename).Str("saved_as", rel).Int("bytes", len(data)).Msg("File saved")
	return &StoredFile{Path: rel, Filename: filename, FileSize: int64(len(data))}, nil
}

// DeleteFile removes relPath. Deleting a missing file is not an error.
func (ls *LocalStorage) DeleteFile(relPath string) error {
	full := ls.GetFullPath(relPath)
	if full == "" {
		return fmt.Errorf("invalid file path: %q", relPath)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFullPath returns the filesystem path of relPath, or "" if it escapes the root.
func (ls *LocalStorage) GetFullPath(relPath string) string {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if relPath == "" || clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return ""
	}
	return filepath.Join(ls.basePath, clean)
}
