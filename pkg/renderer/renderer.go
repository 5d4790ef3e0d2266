package renderer

import (
	"doktor.link/utils"

	"github.com/gofiber/fiber/v2"
)

const DefaultLayout = "layouts/main"

// Render renders view inside layout and adds the current principal as CurrentUser.
func Render(c *fiber.Ctx, view string, layout string, data fiber.Map, statusCode ...int) error {
	status := fiber.StatusOK
	if len(statusCode) > 0 {
		status = statusCode[0]
	}
	if data == nil {
		data = fiber.Map{}
	}
	if p, ok := utils.CurrentPrincipal(c); ok {
		data["CurrentUser"] = p
	}
	return c.Status(status).Render(view, data, layout)
}

// Text answers with a plain-text body.
func Text(c *fiber.Ctx, status int, message string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(message)
}

// JSONStatus body of the JSON endpoints: {"status":"success"|"error","message":...}.
type JSONStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

func JSONSuccess(c *fiber.Ctx, status int, message string, id uint) error {
	return c.Status(status).JSON(JSONStatus{Status: "success", Message: message, ID: id})
}

func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(JSONStatus{Status: "error", Message: message})
}
