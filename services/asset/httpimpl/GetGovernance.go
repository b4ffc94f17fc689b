package httpimpl

import (
	"github.com/labstack/echo/v4"
)

// GetGovernance returns the governance parameters and the current proposals, newest first.
func (h *HTTP) GetGovernance(c echo.Context) error {
	ctx, endSpan := h.startSpan(c, "GetGovernance", "")

	governance, err := h.repository.GetGovernance(ctx)
	endSpan(err)

	return respond(c, governance, err)
}
