package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "서버 오류가 발생했습니다."

// RespondJSON writes data as the response body.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// RespondMessage writes {"message": msg}.
func RespondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// RespondError converts err into {"error": msg} with the status of its kind.
// Errors that are not *AppError are reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindInternal, Message: internalErrorMessage, Err: err}
	}

	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		ErrorLogger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Errorf("%s: %v", appErr.Message, appErr.Err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message})
}
