package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"servicehub/database"
	"servicehub/models"
	"servicehub/observability"
	"servicehub/services/storage"
	"servicehub/services/tasks"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit uploads the recording, records a pending request and queues it for
// processing. When queueing fails the stored request is marked failed and
// returned together with ErrEnqueue.
func (s *DefaultVoiceService) Submit(ctx context.Context, userID, filename string, audio io.Reader) (*models.VoiceRequest, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := io.ReadAll(io.LimitReader(audio, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}
	if len(data) > MaxFileSize {
		return nil, ErrTooLarge
	}

	id := uuid.NewString()
	upload, err := s.Storage.UploadReader(ctx, bytes.NewReader(data), id+ext, storage.FolderVoice)
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}

	req := &models.VoiceRequest{
		ID:          id,
		UserID:      userID,
		AudioURL:    upload.URL,
		StoragePath: upload.PublicID,
		Status:      models.VoicePending,
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		if delErr := s.Storage.DeleteFile(ctx, upload.PublicID); delErr != nil {
			s.Logger.Warn("Orphaned voice upload", zap.String("publicId", upload.PublicID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("save request: %w", err)
	}

	task, opts, err := tasks.NewVoiceTask(models.VoiceTaskPayload{RequestID: id, AudioURL: upload.URL})
	if err == nil {
		_, err = s.Queue.EnqueueContext(ctx, task, opts...)
	}
	if err != nil {
		s.Logger.Error("Failed to enqueue voice request", zap.String("requestId", id), zap.Error(err))
		reason := "enqueue failed: " + err.Error()
		if failErr := s.Repo.Fail(ctx, id, reason); failErr != nil {
			s.Logger.Error("Failed to mark request failed", zap.String("requestId", id), zap.Error(failErr))
		}
		req.Status = models.VoiceFailed
		req.Error = reason
		observability.VoiceRequestsTotal.WithLabelValues(string(models.VoiceFailed)).Inc()
		return req, fmt.Errorf("%w: %v", ErrEnqueue, err)
	}

	observability.VoiceRequestsTotal.WithLabelValues(string(models.VoicePending)).Inc()
	s.Logger.Info("Voice request submitted", zap.String("requestId", id), zap.String("userId", userID))
	return req, nil
}

func (s *DefaultVoiceService) Get(ctx context.Context, userID, id string) (*models.VoiceRequest, error) {
	req, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if req.UserID != userID {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *DefaultVoiceService) List(ctx context.Context, userID string) ([]models.VoiceRequest, error) {
	return s.Repo.ListByUser(ctx, userID)
}
