package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/qshala/reimbursement-api/internal/apperrors"
	"go.uber.org/zap"
)

// LocalStore implements port.BlobStore on the local filesystem. Files are
// written under a fixed public directory with a generated name and served by
// the HTTP server's static route; the URL is built from a configured base.
type LocalStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewLocalStore creates a LocalStore rooted at dir.
func NewLocalStore(dir, baseURL string, logger *zap.Logger) *LocalStore {
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Store writes data under a collision-resistant name (random UUID plus the
// original extension) and returns the public URL.
func (s *LocalStore) Store(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	fullPath := filepath.Join(s.dir, name)

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		s.logger.Error("Failed to create storage directory",
			zap.String("dir", s.dir),
			zap.Error(err))
		return "", apperrors.NewUpstream("storage", "failed to create directory", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		s.logger.Error("Failed to write file",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", apperrors.NewUpstream("storage", "failed to write file", err)
	}

	s.logger.Debug("File saved",
		zap.String("path", fullPath),
		zap.Int("size", len(data)))

	return fmt.Sprintf("%s/%s", s.baseURL, name), nil
}
