package httpimpl

import (
	"net/http"

	"github.com/dashbook/dashbook/errors"
	"github.com/labstack/echo/v4"
)

// errorResponse is the body of every failed API call.
type errorResponse struct {
	// Status repeats the HTTP status code
	Status int32 `json:"status"`

	// Code is the dashbook error code, see errors.ERR
	Code int32 `json:"code"`

	// Err is the human readable message
	Err string `json:"error"`
}

// sendError writes err as a JSON errorResponse with the given status and code.
func sendError(c echo.Context, status int, code int32, err error) error {
	return c.JSON(status, &errorResponse{
		Status: int32(status),
		Code:   code,
		Err:    errorMessage(err),
	})
}

// sendKindError derives status and code from the error kind, so a node-side "not found"
// stays a 404 and a node-side failure becomes a 502.
func sendKindError(c echo.Context, err error) error {
	status := statusForKind(errors.KindOf(err))

	code := int32(errors.ERR_UNKNOWN)

	var tErr *errors.Error
	if errors.As(err, &tErr) {
		code = int32(tErr.Code())
	}

	return sendError(c, status, code, err)
}

func statusForKind(kind errors.Kind) int {
	switch kind {
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindBadRequest:
		return http.StatusBadRequest
	case errors.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage strips the code decoration from coded errors.
func errorMessage(err error) string {
	var tErr *errors.Error
	if errors.As(err, &tErr) && tErr.Message() != "" {
		return tErr.Message()
	}

	return err.Error()
}
