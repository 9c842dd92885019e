package handlers

import (
	"errors"
	"net/http"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/services/cart"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Svc   booking.BookingService
	Carts *cart.Registry
}

func NewBookingHandler(svc booking.BookingService, carts *cart.Registry) *BookingHandler {
	return &BookingHandler{Svc: svc, Carts: carts}
}

func bookingStatus(err error) (int, string) {
	var te *booking.TransitionError
	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound, "booking not found"
	case errors.Is(err, booking.ErrForbidden):
		return http.StatusForbidden, "not allowed"
	case errors.Is(err, booking.ErrConflict), errors.As(err, &te):
		return http.StatusConflict, "invalid booking transition"
	case errors.Is(err, booking.ErrEmptyCart), errors.Is(err, booking.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity, "cart cannot be checked out"
	}
	return http.StatusInternalServerError, "booking operation failed"
}

// Checkout handles POST /api/bookings/checkout.
func (h *BookingHandler) Checkout(c *gin.Context) {
	store, ok := userCart(c, h.Carts)
	if !ok {
		return
	}
	res, err := h.Svc.Checkout(c.Request.Context(), middleware.UserID(c), store)
	if err != nil {
		status, msg := bookingStatus(err)
		fail(c, status, msg, err)
		return
	}
	logSync(c, res.CartSync)
	c.JSON(http.StatusCreated, res)
}

// List handles GET /api/bookings?status=.
func (h *BookingHandler) List(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		fail(c, http.StatusBadRequest, "invalid status filter", nil)
		return
	}
	items, err := h.Svc.List(c.Request.Context(), middleware.UserID(c), status)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	item, err := h.Svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		status, msg := bookingStatus(err)
		fail(c, status, msg, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Transition handles POST /api/bookings/:id/:action.
func (h *BookingHandler) Transition(c *gin.Context) {
	action, ok := booking.ParseAction(c.Param("action"))
	if !ok {
		fail(c, http.StatusNotFound, "unknown booking action", nil)
		return
	}
	item, err := h.Svc.Transition(c.Request.Context(), middleware.UserID(c), c.Param("id"), action)
	if err != nil {
		status, msg := bookingStatus(err)
		fail(c, status, msg, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
