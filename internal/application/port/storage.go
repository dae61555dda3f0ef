package port

import "context"

// BlobStore stores an uploaded file and returns a publicly resolvable URL.
// Implementations (local filesystem, Cloudinary, Supabase storage) are
// interchangeable; callers depend only on this contract.
type BlobStore interface {
	Store(ctx context.Context, data []byte, filename, mimeType string) (string, error)
}
