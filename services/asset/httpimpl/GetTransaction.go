package httpimpl

import (
	"github.com/labstack/echo/v4"
)

// GetTransaction returns the decoded transaction with its inputs, outputs and,
// for special transactions, the typed payload.
func (h *HTTP) GetTransaction(c echo.Context) error {
	txid := c.Param("txid")

	ctx, endSpan := h.startSpan(c, "GetTransaction", "%s", txid)

	tx, err := h.repository.GetTransaction(ctx, txid)
	endSpan(err)

	return respond(c, tx, err)
}
