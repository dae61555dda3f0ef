package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/qshala/reimbursement-api/internal/apperrors"
	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

// SupabaseStore implements port.BlobStore on a Supabase storage bucket with
// public read access.
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
	folder string
	logger *zap.Logger
}

// NewSupabaseStore creates a SupabaseStore for the given project.
func NewSupabaseStore(projectURL, serviceKey, bucket, folder string, logger *zap.Logger) *SupabaseStore {
	client := storage_go.NewClient(strings.TrimRight(projectURL, "/")+"/storage/v1", serviceKey, nil)
	return &SupabaseStore{
		client: client,
		bucket: bucket,
		folder: folder,
		logger: logger,
	}
}

// Store uploads data under the configured folder with a generated object name
// and returns the bucket's public URL for it.
func (s *SupabaseStore) Store(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	objectPath := s.folder + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	_, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &mimeType,
	})
	if err != nil {
		s.logger.Error("Supabase upload failed",
			zap.String("object", objectPath),
			zap.Error(err))
		return "", apperrors.NewUpstream("storage", "supabase upload failed", err)
	}

	resp := s.client.GetPublicUrl(s.bucket, objectPath)

	s.logger.Debug("File uploaded to supabase",
		zap.String("object", objectPath),
		zap.String("url", resp.SignedURL))

	return resp.SignedURL, nil
}
