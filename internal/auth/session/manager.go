package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahayahq/sahaya/internal/config"
)

// DefaultCookieName is the session cookie issued to signed-in donors. The
// short underscore-prefixed name keeps it distinct from analytics cookies.
const DefaultCookieName = "_sid"

// Manager reads and writes the session cookie. Cookies are always HttpOnly
// with SameSite=Lax; the Secure flag follows AUTH_COOKIE_SECURE so local
// development over plain HTTP still works.
type Manager struct {
	name   string
	secure bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		name:   DefaultCookieName,
		secure: cfg.AuthCookieSecure,
	}
}

func (m *Manager) CookieName() string {
	return m.name
}

// ReadToken returns the session token from the request cookie, if present.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	token, err := c.Cookie(m.name)
	if err != nil || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

// Set writes the session cookie with a Max-Age matching the token expiry.
func (m *Manager) Set(c *gin.Context, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.name, value, maxAge, "/", "", m.secure, true)
}

// Clear expires the session cookie immediately.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.name, "", -1, "/", "", m.secure, true)
}
