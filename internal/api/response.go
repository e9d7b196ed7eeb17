package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hillgate/server/internal/apperrors"
	"hillgate/server/internal/auth"
)

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

// respondError maps the error taxonomy onto HTTP statuses: validation 400,
// not-found 404, integrity 409, bad credentials 401, everything else 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
		message = err.Error()
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case apperrors.IsIntegrity(err):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	}

	c.JSON(status, Response{
		Code:    status,
		Message: message,
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: "invalid request: " + err.Error(),
	})
}
