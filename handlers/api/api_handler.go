package handlers // handlers/api

import (
	"errors"

	"doktor.link/configs/configslog"
	"doktor.link/pkg/renderer"
	"doktor.link/services"
	"doktor.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SlotRequest body of POST /api/add_slot.
type SlotRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

// APIHandler JSON endpoints used by the dashboard scripts.
type APIHandler struct {
	schedule services.IScheduleService
	booking  services.IBookingService
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(schedule services.IScheduleService, booking services.IBookingService) *APIHandler {
	return &APIHandler{schedule: schedule, booking: booking}
}

// AddSlot POST /api/add_slot.
func (h *APIHandler) AddSlot(c *fiber.Ctx) error {
	p, _ := utils.CurrentPrincipal(c)

	var req SlotRequest
	if err := c.BodyParser(&req); err != nil {
		return renderer.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	slot, err := h.schedule.AddAvailabilityFromStrings(c.UserContext(), p.UserID, req.StartTime, req.EndTime,
		services.SlotDetails{Location: req.Location, Notes: req.Notes})
	switch {
	case err == nil:
		return renderer.JSONSuccess(c, fiber.StatusCreated, "Slot added.", slot.ID)
	case errors.Is(err, services.ErrMalformedTimestamp):
		return renderer.JSONError(c, fiber.StatusBadRequest, "Invalid date format.")
	case errors.Is(err, services.ErrInvalidInterval):
		return renderer.JSONError(c, fiber.StatusBadRequest, "End time must be after start time.")
	default:
		configslog.Log.Error("API AddSlot error", zap.Uint("userID", p.UserID), zap.Error(err))
		return renderer.JSONError(c, fiber.StatusInternalServerError, "Internal server error.")
	}
}

// BookSlot POST /api/book_slot/:slotId.
func (h *APIHandler) BookSlot(c *fiber.Ctx) error {
	p, _ := utils.CurrentPrincipal(c)

	slotID, err := c.ParamsInt("slotId")
	if err != nil || slotID <= 0 {
		return renderer.JSONError(c, fiber.StatusNotFound, "Slot not found.")
	}

	appt, err := h.booking.BookAppointment(c.UserContext(), uint(slotID), p.UserID)
	switch {
	case err == nil:
		return renderer.JSONSuccess(c, fiber.StatusCreated, "Appointment booked.", appt.ID)
	case errors.Is(err, services.ErrSlotNotFound):
		return renderer.JSONError(c, fiber.StatusNotFound, "Slot not found.")
	case errors.Is(err, services.ErrSlotAlreadyBooked):
		return renderer.JSONError(c, fiber.StatusConflict, "Slot already booked.")
	case errors.Is(err, services.ErrUserNotFound):
		return renderer.JSONError(c, fiber.StatusUnauthorized, "Login required.")
	default:
		configslog.Log.Error("API BookSlot error", zap.Int("slotID", slotID), zap.Uint("userID", p.UserID), zap.Error(err))
		return renderer.JSONError(c, fiber.StatusInternalServerError, "Internal server error.")
	}
}
