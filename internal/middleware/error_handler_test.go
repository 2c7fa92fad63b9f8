package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garageworks/appointment-service/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorHandler_HTTPError(t *testing.T) {
	c, rec := newErrorContext()

	ErrorHandler(echo.NewHTTPError(http.StatusConflict, "slot is no longer available"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "slot is no longer available", resp.Message)
}

func TestErrorHandler_GenericError(t *testing.T) {
	c, rec := newErrorContext()

	ErrorHandler(errors.New("connection refused"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "connection refused", resp.Message)
}

func TestErrorHandler_CommittedResponse(t *testing.T) {
	c, rec := newErrorContext()
	require.NoError(t, c.NoContent(http.StatusNoContent))

	ErrorHandler(errors.New("too late"), c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
