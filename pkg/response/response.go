package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "agentpacks-registry/pkg/errors"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Created sends 201 JSON with data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, NewOKResp(data))
}

// Error renders err. *errors.HTTPError values keep their status, code and message;
// anything else becomes a 500 without leaking the underlying message.
func Error(c *gin.Context, err error) {
	httpErr, ok := pkgErrors.AsHTTPError(err)
	if !ok {
		InternalError(c, err)
		return
	}

	c.AbortWithStatusJSON(httpErr.Status, Resp{
		ErrorCode: httpErr.Status,
		Message:   httpErr.Message,
		Code:      httpErr.Code,
		Category:  string(httpErr.Category),
	})
}

// InternalError sends 500 internal server error.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
		Code:      string(pkgErrors.CategoryInternal),
		Category:  string(pkgErrors.CategoryInternal),
	})
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(c, pkgErrors.NewUnauthenticated(message))
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(c, pkgErrors.NewForbidden(message))
}
