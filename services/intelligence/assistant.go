package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"servicehub/models"

	"go.uber.org/zap"
)

// maxHistoryTurns caps how much client-sent history is replayed.
const maxHistoryTurns = 20

func (s *DefaultAssistantService) Reply(ctx context.Context, req models.AssistantRequest) (models.AssistantResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return models.AssistantResponse{}, ErrEmptyMessage
	}

	history := req.History
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	reply, err := s.model.Chat(ctx, s.preamble(), history, msg)
	if err != nil {
		s.logger.Error("Assistant reply failed", zap.String("userId", req.UserID), zap.Error(err))
		return models.AssistantResponse{}, fmt.Errorf("assistant reply: %w", err)
	}
	return models.AssistantResponse{Reply: strings.TrimSpace(reply)}, nil
}

func (s *DefaultAssistantService) preamble() string {
	var sb strings.Builder
	sb.WriteString("You are the in-app assistant of a local services marketplace. ")
	sb.WriteString("Help users find and book home services. Keep answers short and friendly.")
	if s.catalog != nil {
		var names []string
		for _, c := range s.catalog.Categories() {
			names = append(names, c.Name)
		}
		if len(names) > 0 {
			sb.WriteString(" Available categories: ")
			sb.WriteString(strings.Join(names, ", "))
			sb.WriteString(".")
		}
	}
	return sb.String()
}

const structurePrompt = `Read this transcribed service request and reply with JSON only, no prose:
{"summary": "<one sentence describing what the customer needs>", "serviceHint": "<best matching category name or empty>"}
Categories: %s
Transcript: %q`

// Structure turns a transcript into a summary and a category hint.
func (s *DefaultAssistantService) Structure(ctx context.Context, transcript string) (models.StructuredRequest, error) {
	var categories []string
	if s.catalog != nil {
		for _, c := range s.catalog.Categories() {
			categories = append(categories, c.Name)
		}
	}

	raw, err := s.model.GenerateContent(ctx, fmt.Sprintf(structurePrompt, strings.Join(categories, ", "), transcript))
	if err != nil {
		return models.StructuredRequest{}, fmt.Errorf("structure request: %w", err)
	}
	return parseStructured(raw, transcript), nil
}

// parseStructured reads the model's JSON, tolerating markdown fences. If the
// answer is not JSON the transcript itself becomes the summary.
func parseStructured(raw, transcript string) models.StructuredRequest {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var out models.StructuredRequest
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil || out.Summary == "" {
		return models.StructuredRequest{Summary: transcript, ServiceHint: out.ServiceHint}
	}
	return out
}
