package loggingmw

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/logging"
)

func newLoggedEcho(buf *bytes.Buffer) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	e := echo.New()
	e.Use(RequestLogger(logger))
	return e
}

func TestRequestLoggerLogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := buf.String()
	require.Contains(t, out, "request completed")
	require.Contains(t, out, `"status":200`)
	require.Contains(t, out, `"path":"/ping"`)
	require.Contains(t, out, `"duration_ms"`)
}

func TestRequestLoggerPropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, "req-42", rec.Header().Get(echo.HeaderXRequestID))
	require.Contains(t, buf.String(), `"request_id":"req-42"`)
}

func TestRequestLoggerInjectsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)
	e.GET("/ping", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside handler")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := buf.String()
	require.Contains(t, out, "inside handler")
	require.Contains(t, out, `"method":"GET"`)
}

func TestRequestLoggerLogsErrorsOnce(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)
	e.GET("/boom", func(c echo.Context) error {
		return apperr.Wrap(apperr.Internal, "boom", errors.New("disk on fire"))
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	out := buf.String()
	require.Contains(t, out, `"level":"ERROR"`)
	require.Contains(t, out, "disk on fire")
}
