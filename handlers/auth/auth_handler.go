package handlers // handlers/auth

import (
	"errors"

	"doktor.link/configs/configslog"
	"doktor.link/pkg/renderer"
	"doktor.link/services"
	"doktor.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler login, logout and password rotation.
type AuthHandler struct {
	credentials services.ICredentialService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(credentials services.ICredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return renderer.Render(c, "login", renderer.DefaultLayout, fiber.Map{"Title": "Log in"})
}

// Login verifies the form credentials and starts a session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.credentials.Authenticate(c.UserContext(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return renderer.Text(c, fiber.StatusOK, "Invalid credentials. Please try again.")
		}
		configslog.Log.Error("Login: authenticate error", zap.String("username", username), zap.Error(err))
		return renderer.Text(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	if err := utils.SaveLogin(c, user); err != nil {
		configslog.Log.Error("Login: session could not be saved", zap.Uint("userID", user.ID), zap.Error(err))
		return renderer.Text(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	configslog.Log.Info("User logged in", zap.Uint("userID", user.ID), zap.String("role", string(user.Role)))
	return c.Redirect("/dashboard")
}

// Logout ends the session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := utils.DestroySession(c); err != nil {
		configslog.Log.Warn("Logout: session could not be destroyed", zap.Error(err))
	}
	return c.Redirect("/login")
}

// UpdatePassword rotates the caller's password (form: current_password, new_password).
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	p, ok := utils.CurrentPrincipal(c)
	if !ok {
		return c.Redirect("/login")
	}

	err := h.credentials.ChangePassword(c.UserContext(), p.UserID, c.FormValue("current_password"), c.FormValue("new_password"))
	switch {
	case err == nil:
		return renderer.Text(c, fiber.StatusOK, "Password updated.")
	case errors.Is(err, services.ErrInvalidCredentials):
		return renderer.Text(c, fiber.StatusBadRequest, "Current password is incorrect.")
	case errors.Is(err, services.ErrCredentialRequired):
		return renderer.Text(c, fiber.StatusBadRequest, "New password is required.")
	case errors.Is(err, services.ErrPasswordTooLong):
		return renderer.Text(c, fiber.StatusBadRequest, "New password is too long.")
	case errors.Is(err, services.ErrUserNotFound):
		_ = utils.DestroySession(c)
		return c.Redirect("/login")
	default:
		configslog.Log.Error("UpdatePassword error", zap.Uint("userID", p.UserID), zap.Error(err))
		return renderer.Text(c, fiber.StatusInternalServerError, "Internal server error.")
	}
}
