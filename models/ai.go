package models

// ChatTurn is one exchange the client re-sends as assistant context.
type ChatTurn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// AssistantRequest is the payload coming from the app into /api/ai/chat.
type AssistantRequest struct {
	Message string     `json:"message"`
	UserID  string     `json:"user_id"`
	History []ChatTurn `json:"history,omitempty"`
}

// AssistantResponse is what the chat endpoint returns.
type AssistantResponse struct {
	Reply string `json:"reply"`
}

// StructuredRequest is the assistant's reading of a transcribed voice request.
type StructuredRequest struct {
	Summary     string `json:"summary"`
	ServiceHint string `json:"serviceHint"`
}
