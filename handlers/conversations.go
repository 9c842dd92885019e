package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"servicehub/middleware"
	"servicehub/services/messaging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mobile clients send no Origin; browser origins are already gated by CORS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ConversationHandler struct {
	Svc messaging.MessagingService
	Hub *messaging.Hub
}

func NewConversationHandler(svc messaging.MessagingService, hub *messaging.Hub) *ConversationHandler {
	return &ConversationHandler{Svc: svc, Hub: hub}
}

func messagingStatus(err error) (int, string) {
	switch {
	case errors.Is(err, messaging.ErrConversationNotFound):
		return http.StatusNotFound, "conversation not found"
	case errors.Is(err, messaging.ErrNotParticipant):
		return http.StatusForbidden, "not a participant"
	case errors.Is(err, messaging.ErrEmptyMessage), errors.Is(err, messaging.ErrSelfConversation):
		return http.StatusBadRequest, "invalid message"
	}
	return http.StatusInternalServerError, "messaging failed"
}

// Start handles POST /api/conversations.
func (h *ConversationHandler) Start(c *gin.Context) {
	var req struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	conv, err := h.Svc.Start(c.Request.Context(), middleware.UserID(c), req.ProviderID)
	if err != nil {
		status, msg := messagingStatus(err)
		fail(c, status, msg, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// List handles GET /api/conversations.
func (h *ConversationHandler) List(c *gin.Context) {
	convs, err := h.Svc.Conversations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list conversations", err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

// History handles GET /api/conversations/:id/messages?limit=.
func (h *ConversationHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	msgs, err := h.Svc.History(c.Request.Context(), c.Param("id"), middleware.UserID(c), limit)
	if err != nil {
		status, msg := messagingStatus(err)
		fail(c, status, msg, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// Send handles POST /api/conversations/:id/messages.
func (h *ConversationHandler) Send(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	msg, err := h.Svc.Send(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Text)
	if err != nil {
		status, msg := messagingStatus(err)
		fail(c, status, msg, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Stream handles GET /api/conversations/:id/ws.
func (h *ConversationHandler) Stream(c *gin.Context) {
	conv, err := h.Svc.Authorize(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		status, msg := messagingStatus(err)
		fail(c, status, msg, err)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		getLogger(c).Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	h.Hub.Serve(conn, conv.ID)
}
