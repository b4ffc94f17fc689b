package httpimpl

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/util/tracing"
	"github.com/labstack/echo/v4"
)

var tracer = tracing.Tracer("asset_http")

// queryInt reads a non-negative integer query parameter, 0 when absent.
func queryInt(c echo.Context, name string) (int, error) {
	s := c.QueryParam(name)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.NewInvalidArgumentError("invalid %s parameter %q, expected a non-negative integer", name, s)
	}

	return n, nil
}

// queryPageLimit reads the page and limit parameters shared by the list endpoints.
func queryPageLimit(c echo.Context) (page, limit int, err error) {
	if page, err = queryInt(c, "page"); err != nil {
		return 0, 0, err
	}

	if limit, err = queryInt(c, "limit"); err != nil {
		return 0, 0, err
	}

	return page, limit, nil
}

// startSpan opens the handler span with the asset stat as parent.
func (h *HTTP) startSpan(c echo.Context, name string, format string, args ...interface{}) (context.Context, func(...error)) {
	ctx, _, endSpan := tracer.Start(c.Request().Context(), name+"_http",
		tracing.WithParentStat(AssetStat),
		tracing.WithDebugLogMessage(h.logger, "[Asset_http] "+name+" for %s: "+format, append([]interface{}{c.RealIP()}, args...)...),
	)

	return ctx, endSpan
}

// respond writes v as JSON, or the kind-mapped error when err is set.
func respond(c echo.Context, v interface{}, err error) error {
	if err != nil {
		return sendKindError(c, err)
	}

	return c.JSON(http.StatusOK, v)
}
