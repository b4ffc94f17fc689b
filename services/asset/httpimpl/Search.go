package httpimpl

import (
	"github.com/labstack/echo/v4"
)

// Search classifies q as a block height, block hash, txid, protx hash or address.
//
// Response: {"type": "block"|"tx"|"masternode"|"address"|"none", "value": "..."}
func (h *HTTP) Search(c echo.Context) error {
	q := c.QueryParam("q")

	ctx, endSpan := h.startSpan(c, "Search", "%q", q)

	result, err := h.repository.Search(ctx, q)
	endSpan(err)

	return respond(c, result, err)
}
