package httpimpl

import (
	"github.com/dashbook/dashbook/services/address"
	"github.com/labstack/echo/v4"
)

// GetAddress returns the balance, a newest first page of the address history with per
// transaction deltas, and the unspent outputs when the history is small enough.
func (h *HTTP) GetAddress(c echo.Context) error {
	page, limit, err := queryPageLimit(c)
	if err != nil {
		return sendKindError(c, err)
	}

	req := address.Request{
		Address: c.Param("address"),
		Page:    page,
		Limit:   limit,
	}

	ctx, endSpan := h.startSpan(c, "GetAddress", "%s page %d limit %d", req.Address, page, limit)

	info, err := h.repository.GetAddress(ctx, req)
	endSpan(err)

	return respond(c, info, err)
}
