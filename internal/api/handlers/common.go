package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/api/middleware"
	"github.com/yoockh/huffaz-portal/internal/auth"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

type APIError struct {
	Code             utils.Code `json:"code"`
	Message          string     `json:"message"`
	MissingDocuments []string   `json:"missingDocuments,omitempty"`
}

// writeError renders err and records it on the context for the request logger.
// Internal details are never sent for 5xx responses.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		msg := ae.Message
		if status >= http.StatusInternalServerError {
			msg = http.StatusText(status)
		}
		c.JSON(status, APIError{
			Code:             ae.Code,
			Message:          msg,
			MissingDocuments: ae.MissingDocuments,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requirePrincipal(c *gin.Context) (*auth.Principal, bool) {
	if p, ok := middleware.PrincipalFrom(c); ok {
		return p, true
	}
	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "not authenticated", nil))
	return nil, false
}

// bindJSON binds the body and reports failures as INVALID_ARGUMENT.
func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return false
	}
	return true
}
