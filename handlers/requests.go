package handlers

import (
	"errors"
	"net/http"

	"servicehub/middleware"
	"servicehub/services/voice"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	Svc voice.VoiceService
}

func NewRequestHandler(svc voice.VoiceService) *RequestHandler {
	return &RequestHandler{Svc: svc}
}

// SubmitVoice handles POST /api/requests/voice with a multipart "audio" file.
func (h *RequestHandler) SubmitVoice(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, voice.MaxFileSize+1<<20)
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		fail(c, http.StatusBadRequest, "audio file not provided", err)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "unreadable audio file", err)
		return
	}
	defer f.Close()

	req, err := h.Svc.Submit(c.Request.Context(), middleware.UserID(c), fileHeader.Filename, f)
	switch {
	case errors.Is(err, voice.ErrUnsupportedFormat), errors.Is(err, voice.ErrEmptyAudio):
		fail(c, http.StatusBadRequest, "invalid audio file", err)
	case errors.Is(err, voice.ErrTooLarge):
		fail(c, http.StatusRequestEntityTooLarge, "audio file too large", err)
	case errors.Is(err, voice.ErrEnqueue):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request could not be queued", "message": err.Error(), "request": req})
	case err != nil:
		fail(c, http.StatusInternalServerError, "failed to submit request", err)
	default:
		c.JSON(http.StatusAccepted, req)
	}
}

// List handles GET /api/requests.
func (h *RequestHandler) List(c *gin.Context) {
	reqs, err := h.Svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list requests", err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// Get handles GET /api/requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	req, err := h.Svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if errors.Is(err, voice.ErrRequestNotFound) {
		fail(c, http.StatusNotFound, "request not found", err)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to fetch request", err)
		return
	}
	c.JSON(http.StatusOK, req)
}
