package middleware

import (
	"errors"
	"net/http"

	"github.com/garageworks/appointment-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every unhandled error as a dto.ErrorResponse body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	resp := dto.ErrorResponse{Message: err.Error()}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			resp.Message = m
		}
	}

	_ = c.JSON(code, resp)
}
