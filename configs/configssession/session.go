package configssession

import (
	"time"

	"doktor.link/configs"
	"doktor.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const CookieName = "portal_session"

// SetupSession builds the session store. With SESSION_STORE=redis the data lives in
// Redis so several app processes can share it; otherwise in process memory.
func SetupSession(cfg configs.Config) (*session.Store, error) {
	sessCfg := session.Config{
		Expiration:     cfg.SessionTTL,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	}

	if cfg.SessionStore == configs.SessionStoreRedis {
		storage, err := NewRedisStorage(cfg.RedisURL, "session:")
		if err != nil {
			return nil, err
		}
		sessCfg.Storage = storage
		configslog.Log.Info("Session store: redis", zap.Duration("ttl", cfg.SessionTTL))
	} else {
		configslog.Log.Info("Session store: memory", zap.Duration("ttl", cfg.SessionTTL))
	}

	return session.New(sessCfg), nil
}

// NewMemorySession in-memory store, used by tests and single-process setups.
func NewMemorySession(ttl time.Duration) *session.Store {
	return session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}
