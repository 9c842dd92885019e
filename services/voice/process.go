package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"servicehub/models"
	"servicehub/observability"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Process transcribes and structures a queued request, then stores the
// outcome. Errors that retrying cannot fix are wrapped with asynq.SkipRetry.
func (s *DefaultVoiceService) Process(ctx context.Context, payload models.VoiceTaskPayload) error {
	log := s.Logger.With(zap.String("requestId", payload.RequestID))

	if err := s.Repo.MarkProcessing(ctx, payload.RequestID); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	transcript, err := s.transcribe(ctx, payload.AudioURL)
	if err == nil && strings.TrimSpace(transcript) == "" {
		err = fmt.Errorf("%w: %w", ErrNoSpeech, asynq.SkipRetry)
	}
	if err != nil {
		return s.fail(ctx, log, payload.RequestID, err)
	}

	structured := models.StructuredRequest{Summary: transcript}
	if s.Structurer != nil {
		if out, serr := s.Structurer.Structure(ctx, transcript); serr != nil {
			log.Warn("Structuring failed, keeping raw transcript", zap.Error(serr))
		} else {
			structured = out
		}
	}

	if err := s.Repo.Complete(ctx, payload.RequestID, transcript, structured); err != nil {
		return fmt.Errorf("complete request: %w", err)
	}
	observability.VoiceRequestsTotal.WithLabelValues(string(models.VoiceCompleted)).Inc()
	log.Info("Voice request completed", zap.String("serviceHint", structured.ServiceHint))
	return nil
}

func (s *DefaultVoiceService) fail(ctx context.Context, log *zap.Logger, id string, cause error) error {
	log.Error("Voice request failed", zap.Error(cause))
	if err := s.Repo.Fail(ctx, id, cause.Error()); err != nil {
		log.Error("Failed to mark request failed", zap.Error(err))
	}
	observability.VoiceRequestsTotal.WithLabelValues(string(models.VoiceFailed)).Inc()
	return cause
}

func (s *DefaultVoiceService) transcribe(ctx context.Context, url string) (string, error) {
	if s.Transcriber == nil {
		return "", fmt.Errorf("transcription not configured: %w", asynq.SkipRetry)
	}

	body, err := s.Download(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	defer body.Close()

	ext := filepath.Ext(url)
	if ext == "" || len(ext) > 6 {
		ext = ".audio"
	}
	tmp, err := os.CreateTemp("", "voice-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, io.LimitReader(body, MaxFileSize)); err != nil {
		return "", fmt.Errorf("save audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("save audio: %w", err)
	}

	return s.Transcriber.Transcribe(ctx, tmp.Name(), s.Language)
}

var errDownloadStatus = errors.New("unexpected download status")

func httpDownload(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", errDownloadStatus, resp.StatusCode)
	}
	return resp.Body, nil
}
