package appErrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope every failed request gets.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes err as an HTTP response. Unknown error types are
// reported as a generic internal failure so nothing leaks to the client.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	code := appErr.HTTPCode
	if code == 0 {
		code = http.StatusInternalServerError
	}

	c.AbortWithStatusJSON(code, ErrorResponse{Error: appErr})
}
