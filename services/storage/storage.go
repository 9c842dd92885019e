package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/asset"
	"go.uber.org/zap"
)

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName string, logger *zap.Logger) StorageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Initializing Cloudinary storage", zap.String("cloudName", cloudName))
	return &StorageServiceImpl{
		cld:       cld,
		cloudName: cloudName,
		logger:    logger,
	}
}

// UploadFile uploads a local file to Cloudinary into the specified folder.
func (s *StorageServiceImpl) UploadFile(ctx context.Context, localFilePath, destFolder string) (Upload, error) {
	return s.upload(ctx, localFilePath, filepath.Base(localFilePath), destFolder, "auto")
}

// UploadReader streams r to Cloudinary. The resource type is detected by Cloudinary.
func (s *StorageServiceImpl) UploadReader(ctx context.Context, r io.Reader, filename, destFolder string) (Upload, error) {
	return s.upload(ctx, r, filename, destFolder, "auto")
}

func (s *StorageServiceImpl) upload(ctx context.Context, file interface{}, filename, destFolder, resourceType string) (Upload, error) {
	params := uploader.UploadParams{
		Folder:       destFolder,
		PublicID:     strings.TrimSuffix(filename, filepath.Ext(filename)),
		ResourceType: resourceType,
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return Upload{}, fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return Upload{}, fmt.Errorf("StorageServiceImpl: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return Upload{}, fmt.Errorf("StorageServiceImpl: no public ID returned")
	}
	s.logger.Debug("Uploaded file", zap.String("publicId", result.PublicID), zap.String("folder", destFolder))
	return Upload{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	return nil
}

// getAsset returns an asset instance based on the resource type.
func (s *StorageServiceImpl) getAsset(resourceType, publicID string) (*asset.Asset, error) {
	switch resourceType {
	case "image":
		return s.cld.Image(publicID)
	case "video":
		return s.cld.Video(publicID)
	default:
		return s.cld.Media(publicID)
	}
}

// GetDownloadURL constructs a public URL for a file based on its resource type.
func (s *StorageServiceImpl) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	a, err := s.getAsset(resourceType, publicID)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to get asset: %w", err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to get URL string: %w", err)
	}
	return url, nil
}

// UploadEncryptedFile encrypts the file and uploads the ciphertext as a raw asset.
func (s *StorageServiceImpl) UploadEncryptedFile(ctx context.Context, localFilePath, destFolder, encryptionKey string) (Upload, error) {
	if encryptionKey == "" {
		return Upload{}, fmt.Errorf("StorageServiceImpl: encryption key not configured")
	}
	plaintext, err := os.ReadFile(localFilePath)
	if err != nil {
		return Upload{}, fmt.Errorf("StorageServiceImpl: failed to read file: %w", err)
	}
	ciphertext, err := Encrypt(plaintext, encryptionKey)
	if err != nil {
		return Upload{}, fmt.Errorf("StorageServiceImpl: failed to encrypt file: %w", err)
	}
	name := filepath.Base(localFilePath) + ".enc"
	return s.upload(ctx, bytes.NewReader(ciphertext), name, destFolder, "raw")
}
