package storage

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// Upload identifies a stored object.
type Upload struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// StorageService defines the interface for storage operations.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (Upload, error)
	UploadReader(ctx context.Context, r io.Reader, filename, destFolder string) (Upload, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error)
	// UploadEncryptedFile encrypts the file with AES-256-GCM before uploading it.
	UploadEncryptedFile(ctx context.Context, localFilePath, destFolder, encryptionKey string) (Upload, error)
}

// StorageServiceImpl implements StorageService on Cloudinary.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	logger    *zap.Logger
}

// Folders used by the application.
const (
	FolderVoice        = "requests/voice"
	FolderImages       = "public/images"
	FolderCertificates = "private/certificates"
)
