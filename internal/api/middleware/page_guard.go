package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIPrefix is where the JSON API is mounted. Paths under it never render pages.
const APIPrefix = "/api"

var (
	publicPages = []string{"/", "/login", "/register"}
	// asset prefixes served without a session
	assetPrefixes = []string{"/_next/", "/assets/", "/static/", "/uploads/", "/favicon.ico"}
)

func IsAPIPath(path string) bool {
	return path == APIPrefix || strings.HasPrefix(path, APIPrefix+"/")
}

func isPublicPage(path string) bool {
	for _, p := range publicPages {
		if path == p || (p != "/" && strings.HasPrefix(path, p+"/")) {
			return true
		}
	}
	return false
}

func isAsset(path string) bool {
	for _, p := range assetPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// PageGuard protects web bundle pages. Visitors without a valid session are
// sent to /login; signed-in visitors hitting /login or /register go to /dashboard.
// Unmatched API paths pass through untouched so they still answer in JSON.
func PageGuard(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isAsset(path) || IsAPIPath(path) {
			c.Next()
			return
		}

		signedIn := false
		if raw := TokenFrom(c); raw != "" {
			if p, err := tokens.Verify(c.Request.Context(), raw); err == nil {
				signedIn = true
				c.Set(PrincipalKey, p)
			}
		}

		public := isPublicPage(path)
		switch {
		case !signedIn && !public:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		case signedIn && public && path != "/":
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
