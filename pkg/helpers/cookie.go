package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

func (m *Manager) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	aMax := maxAgeFrom(aexp)
	rMax := maxAgeFrom(rexp)

	c.SetCookie("access_token", access, aMax, "/", m.Domain, m.Secure, true)
	c.SetCookie("refresh_token", refresh, rMax, "/", m.Domain, m.Secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie("refresh_token", "", -1, "/", m.Domain, m.Secure, true)
}

// SetRegistrationSession stores the id of the pending-verification marker a
// seller must present on the OTP step. Short-lived, HttpOnly.
func (m *Manager) SetRegistrationSession(c *gin.Context, sessionID string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("reg_session", sessionID, int(ttl.Seconds()), "/", m.Domain, m.Secure, true)
}

func (m *Manager) RegistrationSession(c *gin.Context) string {
	v, err := c.Cookie("reg_session")
	if err != nil {
		return ""
	}
	return v
}

func (m *Manager) ClearRegistrationSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("reg_session", "", -1, "/", m.Domain, m.Secure, true)
}

// SetCartID stores the anonymous cart identifier. Carts live server-side for
// a week; the cookie matches that.
func (m *Manager) SetCartID(c *gin.Context, cartID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("cart_id", cartID, int((7 * 24 * time.Hour).Seconds()), "/", m.Domain, m.Secure, true)
}

func (m *Manager) CartID(c *gin.Context) string {
	v, err := c.Cookie("cart_id")
	if err != nil {
		return ""
	}
	return v
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
