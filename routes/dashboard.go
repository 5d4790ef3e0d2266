package routes

import (
	handlers "doktor.link/handlers/dashboard"
	"doktor.link/middlewares"
	"doktor.link/models"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes HTML routes behind the session.
func registerDashboardRoutes(app *fiber.App, svc appServices) {
	dashboardHandler := handlers.NewDashboardHandler(svc.schedule, svc.booking)

	app.Get("/dashboard", middlewares.AuthMiddleware, dashboardHandler.Dashboard)
	app.Post("/book_appointment/:slotId",
		middlewares.AuthMiddleware,
		middlewares.RequireRole(models.RolePatient),
		dashboardHandler.BookAppointment,
	)
	app.Post("/add_availability",
		middlewares.AuthMiddleware,
		middlewares.RequireRole(models.RoleDoctor),
		dashboardHandler.AddAvailability,
	)
}
