package handlers

import (
	"errors"
	"net/http"

	"servicehub/services/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Svc auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// RequestOTP handles POST /api/auth/otp/request.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.Svc.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		if errors.Is(err, auth.ErrInvalidPhone) {
			fail(c, http.StatusBadRequest, "invalid phone number", err)
			return
		}
		fail(c, http.StatusInternalServerError, "failed to send verification code", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyOTP handles POST /api/auth/otp/verify.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	session, err := h.Svc.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	switch {
	case errors.Is(err, auth.ErrInvalidPhone):
		fail(c, http.StatusBadRequest, "invalid phone number", err)
	case errors.Is(err, auth.ErrInvalidOTP), errors.Is(err, auth.ErrOTPExpired):
		fail(c, http.StatusUnauthorized, "verification failed", err)
	case err != nil:
		fail(c, http.StatusInternalServerError, "verification failed", err)
	default:
		c.JSON(http.StatusOK, session)
	}
}
