package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

// Recovery turns a panic into a 500 JSON body and logs it.
func Recovery(l *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		l.WithFields(logrus.Fields{
			"panic":  rec,
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
			Code:    utils.CodeInternal,
			Message: http.StatusText(http.StatusInternalServerError),
		})
	})
}
