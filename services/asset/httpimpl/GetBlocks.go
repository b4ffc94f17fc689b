package httpimpl

import (
	"github.com/labstack/echo/v4"
)

// GetBlocks returns a page of block summaries walking down from the tip.
//
// Query parameters:
//   - page: 1 based, default 1
//   - limit: default 20, capped at 100
//
// Response: {"blocks": [...], "total": <tip height + 1>, "page": n, "pages": m}
func (h *HTTP) GetBlocks(c echo.Context) error {
	page, limit, err := queryPageLimit(c)
	if err != nil {
		return sendKindError(c, err)
	}

	ctx, endSpan := h.startSpan(c, "GetBlocks", "page %d limit %d", page, limit)

	blocks, err := h.repository.GetBlocks(ctx, page, limit)
	endSpan(err)

	return respond(c, blocks, err)
}

// GetBlock returns the block detail. The parameter is a height when it is all digits,
// otherwise it must be a 64 character block hash.
func (h *HTTP) GetBlock(c echo.Context) error {
	hashOrHeight := c.Param("hashOrHeight")

	ctx, endSpan := h.startSpan(c, "GetBlock", "%s", hashOrHeight)

	block, err := h.repository.GetBlock(ctx, hashOrHeight)
	endSpan(err)

	return respond(c, block, err)
}
