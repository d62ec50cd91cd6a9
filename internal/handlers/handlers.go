// Package handlers contains the echo HTTP handlers for the shop API.
// Handlers bind and validate request bodies, call into the service
// layer, and return plain JSON. Error mapping to status codes lives in
// the transport error handler.
package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
)

func paramID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.Validation, fmt.Sprintf("invalid %s parameter: %s", name, raw))
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
