package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie the authorization gate also accepts in
// place of the Authorization header.
const CookieName = "token"

// CookieManager writes and clears the session token cookie.
type CookieManager struct {
	Domain string
	Secure bool // set in production so the cookie only travels over TLS
	TTL    time.Duration
}

func NewCookieManager(domain string, secure bool, ttl time.Duration) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure, TTL: ttl}
}

// SetToken stores the session token as an httpOnly cookie.
func (m *CookieManager) SetToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.TTL.Seconds()), "/", m.Domain, m.Secure, true)
}

// Clear expires the session cookie immediately.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", m.Domain, m.Secure, true)
}
