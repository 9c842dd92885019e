package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/services/notification"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	Svc notification.NotificationService
}

func NewDeviceHandler(svc notification.NotificationService) *DeviceHandler {
	return &DeviceHandler{Svc: svc}
}

// RegisterFCM handles POST /api/devices/fcm.
func (h *DeviceHandler) RegisterFCM(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.Svc.RegisterDevice(c.Request.Context(), middleware.UserID(c), req.Token); err != nil {
		fail(c, http.StatusInternalServerError, "failed to register device", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "device registered"})
}
