package routes

import (
	api_handlers "doktor.link/handlers/api"
	"doktor.link/middlewares"
	"doktor.link/models"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes JSON endpoints under /api.
func registerAPIRoutes(app *fiber.App, svc appServices) {
	apiHandler := api_handlers.NewAPIHandler(svc.schedule, svc.booking)
	apiGroup := app.Group("/api")

	apiGroup.Post("/add_slot", middlewares.APIRequireRole(models.RoleDoctor), apiHandler.AddSlot)
	apiGroup.Post("/book_slot/:slotId", middlewares.APIRequireRole(models.RolePatient), apiHandler.BookSlot)
}
