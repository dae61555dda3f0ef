package storage

import (
	"fmt"

	"github.com/qshala/reimbursement-api/internal/application/port"
	"github.com/qshala/reimbursement-api/internal/config"
	"go.uber.org/zap"
)

// New selects a blob storage backend from configuration.
func New(cfg config.StorageConfig, logger *zap.Logger) (port.BlobStore, error) {
	switch cfg.Backend {
	case "local":
		return NewLocalStore(cfg.Local.Dir, cfg.Local.BaseURL, logger), nil
	case "cloudinary":
		return NewCloudinaryStore(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
			cfg.Folder,
			logger,
		)
	case "supabase":
		return NewSupabaseStore(
			cfg.Supabase.URL,
			cfg.Supabase.ServiceKey,
			cfg.Supabase.Bucket,
			cfg.Folder,
			logger,
		), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
