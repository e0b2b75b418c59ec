package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// All error responses share one shape: {"status": <code>, "message":
// <text>}.  The message text for business-rule failures is part of the
// API contract, so handlers pass repository sentinel messages and
// validator messages through verbatim.

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"status": status, "message": message})
}

func badRequest(c echo.Context, message string) error {
	return fail(c, http.StatusBadRequest, message)
}

func notFound(c echo.Context, message string) error {
	return fail(c, http.StatusNotFound, message)
}

func internalError(c echo.Context, message string) error {
	return fail(c, http.StatusInternalServerError, message)
}

// dataEnvelope is the request body wrapper used by every mutating
// endpoint: {"data": {...}}.  The payload stays untyped here so the
// validator can report unknown fields and wrong runtime types.
type dataEnvelope struct {
	Data map[string]any `json:"data"`
}

// bindData decodes the request envelope and enforces the presence of
// the data object.  The returned error message is client-ready.
func bindData(c echo.Context) (map[string]any, error) {
	var body dataEnvelope
	if err := c.Bind(&body); err != nil {
		return nil, errBadBody
	}
	if body.Data == nil {
		return nil, errNoData
	}
	return body.Data, nil
}

var (
	errBadBody = errors.New("invalid request body")
	errNoData  = errors.New("request body must include a data object")
)

// pathID parses a numeric path parameter; zero and garbage are both
// rejected.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}
