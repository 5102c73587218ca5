package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/auth"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

const (
	TokenCookie  = "token"
	PrincipalKey = "principal"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// TokenVerifier is satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.Principal, error)
}

// TokenFrom reads the session cookie, falling back to a bearer header.
func TokenFrom(c *gin.Context) string {
	if tok, err := c.Cookie(TokenCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// SessionAuth rejects requests without a valid, unrevoked session token.
func SessionAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFrom(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "not authenticated",
			})
			return
		}

		p, err := tokens.Verify(c.Request.Context(), raw)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrRevokedToken) {
				_ = c.Error(err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "invalid token",
			})
			return
		}

		c.Set(PrincipalKey, p)
		c.Set("user_id", p.ID)
		c.Set("role", string(p.Role))
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (*auth.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok && p != nil
}

// OptionalSession attaches the principal when a valid token is present and
// never rejects the request.
func OptionalSession(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := TokenFrom(c); raw != "" {
			if p, err := tokens.Verify(c.Request.Context(), raw); err == nil {
				c.Set(PrincipalKey, p)
				c.Set("user_id", p.ID)
				c.Set("role", string(p.Role))
			}
		}
		c.Next()
	}
}
