package httpimpl

import (
	"github.com/dashbook/dashbook/services/asset/repository"
	"github.com/labstack/echo/v4"
)

// GetMasternodes returns a filtered page of the masternode list.
//
// Query parameters:
//   - page, limit: default 1 and 50, limit capped at 200
//   - type: Regular, Evo or all (case insensitive)
//   - status: ENABLED, POSE_BANNED, ... or all (case insensitive)
func (h *HTTP) GetMasternodes(c echo.Context) error {
	page, limit, err := queryPageLimit(c)
	if err != nil {
		return sendKindError(c, err)
	}

	query := repository.MasternodeQuery{
		Page:   page,
		Limit:  limit,
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
	}

	ctx, endSpan := h.startSpan(c, "GetMasternodes", "%+v", query)

	masternodes, err := h.repository.GetMasternodes(ctx, query)
	endSpan(err)

	return respond(c, masternodes, err)
}

func (h *HTTP) GetMasternode(c echo.Context) error {
	proTxHash := c.Param("protxhash")

	ctx, endSpan := h.startSpan(c, "GetMasternode", "%s", proTxHash)

	masternode, err := h.repository.GetMasternode(ctx, proTxHash)
	endSpan(err)

	return respond(c, masternode, err)
}
