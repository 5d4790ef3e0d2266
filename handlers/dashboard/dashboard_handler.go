package handlers // handlers/dashboard

import (
	"errors"

	"doktor.link/configs/configslog"
	"doktor.link/models"
	"doktor.link/pkg/renderer"
	"doktor.link/services"
	"doktor.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler role-specific dashboards and the two form actions.
type DashboardHandler struct {
	schedule services.IScheduleService
	booking  services.IBookingService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(schedule services.IScheduleService, booking services.IBookingService) *DashboardHandler {
	return &DashboardHandler{schedule: schedule, booking: booking}
}

// Dashboard doctors see their own slots and appointments; patients see every
// slot and their own appointments.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	p, ok := utils.CurrentPrincipal(c)
	if !ok {
		return c.Redirect("/login")
	}
	ctx := c.UserContext()

	var (
		view         string
		slots        []models.SlotView
		appointments []models.AppointmentView
		err          error
	)
	switch p.Role {
	case models.RoleDoctor:
		view = "doctor_dashboard"
		if slots, err = h.schedule.ListSlotsForDoctor(ctx, p.UserID); err == nil {
			appointments, err = h.booking.ListAppointmentsForDoctor(ctx, p.UserID)
		}
	case models.RolePatient:
		view = "patient_dashboard"
		if slots, err = h.schedule.ListAllSlots(ctx); err == nil {
			appointments, err = h.booking.ListAppointmentsForPatient(ctx, p.UserID)
		}
	default:
		return renderer.Text(c, fiber.StatusOK, "Unknown role.")
	}

	if err != nil {
		configslog.Log.Error("Dashboard: listing failed", zap.Uint("userID", p.UserID), zap.String("role", string(p.Role)), zap.Error(err))
		return renderer.Text(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	return renderer.Render(c, view, renderer.DefaultLayout, fiber.Map{
		"Title":        "Dashboard",
		"Slots":        slots,
		"Appointments": appointments,
	})
}

// BookAppointment POST /book_appointment/:slotId (patients only).
func (h *DashboardHandler) BookAppointment(c *fiber.Ctx) error {
	p, ok := utils.CurrentPrincipal(c)
	if !ok {
		return c.Redirect("/login")
	}
	slotID, err := c.ParamsInt("slotId")
	if err != nil || slotID <= 0 {
		return renderer.Text(c, fiber.StatusNotFound, "Slot not found.")
	}

	_, err = h.booking.BookAppointment(c.UserContext(), uint(slotID), p.UserID)
	switch {
	case err == nil:
		return c.Redirect("/dashboard")
	case errors.Is(err, services.ErrSlotNotFound):
		return renderer.Text(c, fiber.StatusNotFound, "Slot not found.")
	case errors.Is(err, services.ErrSlotAlreadyBooked):
		return renderer.Text(c, fiber.StatusConflict, "Slot already booked.")
	case errors.Is(err, services.ErrUserNotFound):
		// session outlived its user row
		_ = utils.DestroySession(c)
		return c.Redirect("/login")
	default:
		configslog.Log.Error("BookAppointment error", zap.Int("slotID", slotID), zap.Uint("userID", p.UserID), zap.Error(err))
		return renderer.Text(c, fiber.StatusInternalServerError, "Internal server error.")
	}
}

// AddAvailability POST /add_availability (doctors only).
func (h *DashboardHandler) AddAvailability(c *fiber.Ctx) error {
	p, ok := utils.CurrentPrincipal(c)
	if !ok {
		return c.Redirect("/login")
	}

	details := services.SlotDetails{Location: c.FormValue("location"), Notes: c.FormValue("notes")}
	_, err := h.schedule.AddAvailabilityFromStrings(c.UserContext(), p.UserID, c.FormValue("start_time"), c.FormValue("end_time"), details)
	switch {
	case err == nil:
		return c.Redirect("/dashboard")
	case errors.Is(err, services.ErrMalformedTimestamp):
		return renderer.Text(c, fiber.StatusBadRequest, "Invalid date format.")
	case errors.Is(err, services.ErrInvalidInterval):
		return renderer.Text(c, fiber.StatusBadRequest, "End time must be after start time.")
	default:
		configslog.Log.Error("AddAvailability error", zap.Uint("userID", p.UserID), zap.Error(err))
		return renderer.Text(c, fiber.StatusInternalServerError, "Internal server error.")
	}
}
