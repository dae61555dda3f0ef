package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/qshala/reimbursement-api/internal/apperrors"
	"go.uber.org/zap"
)

// CloudinaryStore implements port.BlobStore on the Cloudinary media CDN.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewCloudinaryStore creates a CloudinaryStore for the given account.
func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string, logger *zap.Logger) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}
	return &CloudinaryStore{
		client: client,
		folder: folder,
		logger: logger,
	}, nil
}

// Store uploads data into the configured folder and returns the HTTPS
// delivery URL.
func (s *CloudinaryStore) Store(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: s.folder,
	})
	if err != nil {
		s.logger.Error("Cloudinary upload failed",
			zap.String("filename", filename),
			zap.Error(err))
		return "", apperrors.NewUpstream("storage", "cloudinary upload failed", err)
	}
	if resp.Error.Message != "" {
		return "", apperrors.NewUpstream("storage", resp.Error.Message, nil)
	}

	s.logger.Debug("File uploaded to cloudinary",
		zap.String("public_id", resp.PublicID),
		zap.String("url", resp.SecureURL))

	return resp.SecureURL, nil
}
