package handlers

import (
	"errors"
	"net/http"

	"servicehub/models"
	ai "servicehub/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AIHandler struct {
	Svc ai.AssistantService
}

func NewAIHandler(svc ai.AssistantService) *AIHandler {
	return &AIHandler{Svc: svc}
}

// Chat handles POST /api/ai/chat. The client re-sends prior turns in history.
func (h *AIHandler) Chat(c *gin.Context) {
	var req models.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.Svc.Reply(c.Request.Context(), req)
	if errors.Is(err, ai.ErrEmptyMessage) {
		fail(c, http.StatusBadRequest, "message is required", err)
		return
	}
	if err != nil {
		getLogger(c).Error("Assistant reply failed", zap.String("userId", req.UserID), zap.Error(err))
		fail(c, http.StatusBadGateway, "assistant unavailable", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
