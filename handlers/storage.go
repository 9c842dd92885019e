package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"servicehub/middleware"
	"servicehub/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

var (
	allowedImageExt       = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true}
	allowedCertificateExt = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}
)

// StorageHandler serves public image uploads and encrypted certificate uploads.
type StorageHandler struct {
	Svc            storage.StorageService
	CertificateKey string
}

func NewStorageHandler(svc storage.StorageService, certificateKey string) *StorageHandler {
	return &StorageHandler{Svc: svc, CertificateKey: certificateKey}
}

// receive saves the multipart "file" to a temp path. The caller removes it.
func receive(c *gin.Context, allowed map[string]bool) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file not provided", err)
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowed[ext] {
		fail(c, http.StatusBadRequest, "unsupported file type", errors.New(ext))
		return "", false
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to save file", err)
		return "", false
	}
	tmp.Close()
	if err := c.SaveUploadedFile(fileHeader, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		fail(c, http.StatusInternalServerError, "failed to save file", err)
		return "", false
	}
	return tmp.Name(), true
}

// UploadImage handles POST /api/storage/images.
func (h *StorageHandler) UploadImage(c *gin.Context) {
	path, ok := receive(c, allowedImageExt)
	if !ok {
		return
	}
	defer os.Remove(path)

	folder := storage.FolderImages + "/" + middleware.UserID(c)
	up, err := h.Svc.UploadFile(c.Request.Context(), path, folder)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to upload file", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file uploaded successfully", "publicId": up.PublicID, "downloadURL": up.URL})
}

// UploadCertificate handles POST /api/storage/certificates. The file is stored encrypted.
func (h *StorageHandler) UploadCertificate(c *gin.Context) {
	if h.CertificateKey == "" {
		fail(c, http.StatusServiceUnavailable, "certificate storage is not configured", nil)
		return
	}
	path, ok := receive(c, allowedCertificateExt)
	if !ok {
		return
	}
	defer os.Remove(path)

	userID := middleware.UserID(c)
	up, err := h.Svc.UploadEncryptedFile(c.Request.Context(), path, storage.FolderCertificates+"/"+userID, h.CertificateKey)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to upload certificate", err)
		return
	}
	getLogger(c).Info("Certificate stored", zap.String("userId", userID), zap.String("publicId", up.PublicID))
	c.JSON(http.StatusOK, gin.H{"message": "certificate uploaded successfully", "permanentFileID": up.PublicID})
}
