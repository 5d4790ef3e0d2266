package utils

import (
	"errors"

	"doktor.link/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionStoreLocal = "session_store"
	principalLocal    = "principal"

	sessionUserID   = "user_id"
	sessionUsername = "username"
	sessionRole     = "role"
)

var (
	ErrNoSessionStore = errors.New("session store not initialized")
	ErrNoPrincipal    = errors.New("no authenticated user in session")
)

// Principal identity of the caller for the duration of one request.
type Principal struct {
	UserID   uint
	Username string
	Role     models.Role
}

// SetSessionStore makes store reachable from handlers through SessionStart.
func SetSessionStore(c *fiber.Ctx, store *session.Store) {
	c.Locals(sessionStoreLocal, store)
}

// SessionStart loads (or creates) the session of the current request.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(sessionStoreLocal).(*session.Store)
	if !ok || store == nil {
		return nil, ErrNoSessionStore
	}
	return store.Get(c)
}

// PrincipalFromSession reads the identity written by SaveLogin.
func PrincipalFromSession(sess *session.Session) (Principal, error) {
	id, idOK := sess.Get(sessionUserID).(uint)
	name, nameOK := sess.Get(sessionUsername).(string)
	role, roleOK := sess.Get(sessionRole).(string)
	if !idOK || !nameOK || !roleOK || id == 0 {
		return Principal{}, ErrNoPrincipal
	}
	return Principal{UserID: id, Username: name, Role: models.Role(role)}, nil
}

// SaveLogin regenerates the session id and stores the user identity in it.
func SaveLogin(c *fiber.Ctx, user *models.User) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserID, user.ID)
	sess.Set(sessionUsername, user.Username)
	sess.Set(sessionRole, string(user.Role))
	return sess.Save()
}

// DestroySession clears the current session, if any.
func DestroySession(c *fiber.Ctx) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SetPrincipal attaches p to the request.
func SetPrincipal(c *fiber.Ctx, p Principal) {
	c.Locals(principalLocal, p)
}

// CurrentPrincipal returns the principal set by the session middleware.
func CurrentPrincipal(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalLocal).(Principal)
	return p, ok && p.UserID != 0
}
