package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/podcastge/studio/internal/config"
)

const (
	DefaultCookieName = "admin_session"
	DefaultTTL        = 7 * 24 * time.Hour
)

// Manager manages the admin session cookie. The token it issues is
// opaque and never checked against server-side state: authentication
// is solely "a non-empty cookie with this name exists".
type Manager struct {
	cookieName string
	secure     bool
	ttl        time.Duration
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		cookieName: DefaultCookieName,
		secure:     cfg.AuthCookieSecure,
		ttl:        DefaultTTL,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// NewToken builds the opaque session value from the current time and
// random bytes.
func (m *Manager) NewToken() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	raw := fmt.Sprintf("%d%x", time.Now().UnixNano(), buf)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// IsAuthenticated reports whether the request carries a non-empty
// session cookie. The value is not verified.
func (m *Manager) IsAuthenticated(c *gin.Context) bool {
	token, err := c.Cookie(m.cookieName)
	if err != nil {
		return false
	}
	return strings.TrimSpace(token) != ""
}

func (m *Manager) Set(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}
