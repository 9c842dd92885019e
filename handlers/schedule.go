package handlers

import (
	"errors"
	"net/http"

	"servicehub/services/cart"
	"servicehub/services/scheduling"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	Scheduler *scheduling.Scheduler
	Carts     *cart.Registry
}

func NewScheduleHandler(s *scheduling.Scheduler, carts *cart.Registry) *ScheduleHandler {
	return &ScheduleHandler{Scheduler: s, Carts: carts}
}

// Dates handles GET /api/schedule/dates.
func (h *ScheduleHandler) Dates(c *gin.Context) {
	c.JSON(http.StatusOK, h.Scheduler.AvailableDates())
}

// Slots handles GET /api/schedule/slots.
func (h *ScheduleHandler) Slots(c *gin.Context) {
	c.JSON(http.StatusOK, h.Scheduler.TimeSlots())
}

// State handles POST /api/schedule/state.
func (h *ScheduleHandler) State(c *gin.Context) {
	var sel scheduling.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.Scheduler.StateOf(sel)})
}

// Confirm handles POST /api/schedule/confirm and writes the selection into the cart.
func (h *ScheduleHandler) Confirm(c *gin.Context) {
	var sel scheduling.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	store, ok := userCart(c, h.Carts)
	if !ok {
		return
	}
	conf, err := h.Scheduler.Confirm(c.Request.Context(), store, sel)
	switch {
	case errors.Is(err, scheduling.ErrUnknownService):
		fail(c, http.StatusNotFound, "service not found", err)
	case errors.Is(err, scheduling.ErrIncompleteSelection),
		errors.Is(err, scheduling.ErrDateUnavailable),
		errors.Is(err, scheduling.ErrUnknownSlot),
		errors.Is(err, scheduling.ErrInvalidPricingMode):
		fail(c, http.StatusUnprocessableEntity, "invalid selection", err)
	case err != nil:
		fail(c, http.StatusInternalServerError, "failed to confirm selection", err)
	default:
		logSync(c, conf.Sync)
		c.JSON(http.StatusOK, conf)
	}
}
