package ai

import (
	"context"
	"errors"

	"servicehub/models"

	"go.uber.org/zap"
)

// ErrEmptyMessage is returned when the user sent nothing to answer.
var ErrEmptyMessage = errors.New("message is empty")

// AssistantService answers chat messages and structures transcribed requests.
// It keeps no conversation state; clients re-send history.
type AssistantService interface {
	Reply(ctx context.Context, req models.AssistantRequest) (models.AssistantResponse, error)
	Structure(ctx context.Context, transcript string) (models.StructuredRequest, error)
}

// Model is the generative backend. *GeminiClient implements it.
type Model interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, system string, history []models.ChatTurn, message string) (string, error)
}

// CategorySource lists catalog categories for the assistant's preamble.
type CategorySource interface {
	Categories() []models.ServiceCategory
}

type DefaultAssistantService struct {
	model   Model
	catalog CategorySource
	logger  *zap.Logger
}

func NewAssistantService(model Model, catalog CategorySource, logger *zap.Logger) *DefaultAssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAssistantService{model: model, catalog: catalog, logger: logger}
}
