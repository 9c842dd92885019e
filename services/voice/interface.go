package voice

import (
	"context"
	"io"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/storage"
	"servicehub/services/tasks"

	"go.uber.org/zap"
)

const (
	MaxFileSize     = 5 * 1024 * 1024
	DefaultLanguage = "en-US"
)

// AllowedExtensions are the recorder formats accepted for upload.
var AllowedExtensions = map[string]bool{
	".m4a":  true,
	".wav":  true,
	".mp3":  true,
	".aac":  true,
	".caf":  true,
	".webm": true,
}

// VoiceService takes recorded requests in and processes them in the background.
type VoiceService interface {
	Submit(ctx context.Context, userID, filename string, audio io.Reader) (*models.VoiceRequest, error)
	Get(ctx context.Context, userID, id string) (*models.VoiceRequest, error)
	List(ctx context.Context, userID string) ([]models.VoiceRequest, error)
	Process(ctx context.Context, payload models.VoiceTaskPayload) error
}

// Transcriber turns an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

// Structurer extracts a summary and category hint from a transcript.
type Structurer interface {
	Structure(ctx context.Context, transcript string) (models.StructuredRequest, error)
}

// Downloader fetches uploaded audio back from storage.
type Downloader func(ctx context.Context, url string) (io.ReadCloser, error)

type DefaultVoiceService struct {
	Storage     storage.StorageService
	Repo        repository.RequestRepository
	Queue       tasks.Enqueuer
	Transcriber Transcriber
	Structurer  Structurer
	Download    Downloader
	Language    string
	Logger      *zap.Logger
}

func NewDefaultVoiceService(store storage.StorageService, repo repository.RequestRepository, queue tasks.Enqueuer, logger *zap.Logger) *DefaultVoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultVoiceService{
		Storage:  store,
		Repo:     repo,
		Queue:    queue,
		Download: httpDownload,
		Language: DefaultLanguage,
		Logger:   logger,
	}
}
