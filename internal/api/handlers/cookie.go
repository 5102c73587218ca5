package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/api/middleware"
)

// CookieHelper manages the session cookie.
type CookieHelper struct {
	secure bool
	maxAge time.Duration
}

func NewCookieHelper(secure bool, maxAge time.Duration) *CookieHelper {
	return &CookieHelper{secure: secure, maxAge: maxAge}
}

func (h *CookieHelper) SetSession(c *gin.Context, token string) {
	h.set(c, token, int(h.maxAge.Seconds()))
}

func (h *CookieHelper) ClearSession(c *gin.Context) {
	h.set(c, "", -1)
}

func (h *CookieHelper) set(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, value, maxAge, "/", "", h.secure, true)
}
