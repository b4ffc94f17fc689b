package httpimpl

import (
	"github.com/labstack/echo/v4"
)

// GetStatus returns the chain status snapshot: tip, chainlock, difficulty, credit pool,
// masternode counts and mempool figures. The snapshot is cached for a few seconds.
func (h *HTTP) GetStatus(c echo.Context) error {
	ctx, endSpan := h.startSpan(c, "GetStatus", "")

	status, err := h.repository.GetStatus(ctx)
	endSpan(err)

	return respond(c, status, err)
}

// GetNetwork returns the network overview, always read fresh from the node.
func (h *HTTP) GetNetwork(c echo.Context) error {
	ctx, endSpan := h.startSpan(c, "GetNetwork", "")

	network, err := h.repository.GetNetwork(ctx)
	endSpan(err)

	return respond(c, network, err)
}

// GetMempool returns the mempool summary and the txids currently in it.
func (h *HTTP) GetMempool(c echo.Context) error {
	ctx, endSpan := h.startSpan(c, "GetMempool", "")

	mempool, err := h.repository.GetMempool(ctx)
	endSpan(err)

	return respond(c, mempool, err)
}
