// Package httpimpl serves the dashbook REST API, the live event WebSocket and the explorer's static files.
package httpimpl

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/services/asset/repository"
	"github.com/dashbook/dashbook/services/live"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/servicemanager"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ordishs/gocore"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

var AssetStat = gocore.NewStat("Asset")

// HealthFunc reports a status code and a JSON details document.
type HealthFunc func(ctx context.Context, checkLiveness bool) (int, string, error)

// HTTP handles the explorer API endpoints using the Echo framework.
type HTTP struct {
	logger     ulogger.Logger
	settings   *settings.Settings
	repository repository.Interface
	bus        *live.Bus
	health     HealthFunc
	e          *echo.Echo
	upgrader   websocket.Upgrader
	startTime  time.Time
}

// New creates the echo instance with all routes and middleware.
//
// API endpoints, relative to asset_apiPrefix:
//
//	GET /status                      chain status snapshot
//	GET /blocks?page&limit           latest blocks, newest first
//	GET /block/:hashOrHeight         block detail by hash or height
//	GET /tx/:txid                    transaction detail
//	GET /address/:address?page&limit address balance, history and utxos
//	GET /masternodes?page&limit&type&status
//	GET /masternode/:protxhash       masternode detail
//	GET /governance                  governance info and proposals
//	GET /network                     network overview
//	GET /mempool                     mempool summary and txids
//	GET /search?q=                   classify a query string
//	GET /ws                          live NewBlock and MempoolUpdate events
//
// Outside the prefix: /alive, /health, the prometheus endpoint, gocore stats under stats_prefix
// and the static explorer with index.html fallback.
func New(logger ulogger.Logger, tSettings *settings.Settings, repo repository.Interface, bus *live.Bus) (*HTTP, error) {
	initPrometheusMetrics()

	e := echo.New()
	e.Debug = tSettings.Asset.EchoDebug
	e.HideBanner = true
	e.HidePort = true

	h := &HTTP{
		logger:     logger,
		settings:   tSettings,
		repository: repo,
		bus:        bus,
		health:     repo.Health,
		e:          e,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		startTime: time.Now(),
	}

	apiPrefix := strings.TrimSuffix(tSettings.Asset.APIPrefix, "/")
	wsPath := apiPrefix + "/ws"

	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return true, nil
		},
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestedWith},
		ExposeHeaders: []string{echo.HeaderContentLength, echo.HeaderContentType},
		MaxAge:        86400,
	}))

	// gzip wraps the response writer, the upgrade has to hijack the raw one
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == wsPath
		},
	}))

	if tSettings.Asset.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: func(c echo.Context) bool {
				return !strings.HasPrefix(c.Path(), apiPrefix+"/")
			},
			Store: middleware.NewRateLimiterMemoryStore(rate.Limit(tSettings.Asset.RateLimit)),
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return sendError(c, http.StatusTooManyRequests, int32(errors.ERR_THRESHOLD_EXCEEDED), errors.NewThresholdExceededError("rate limit exceeded"))
			},
		}))
	}

	e.Use(requestMetricsMiddleware())

	if e.Debug {
		e.Use(customLoggerMiddleware(logger))
	}

	e.GET("/alive", func(c echo.Context) error {
		return c.String(http.StatusOK, fmt.Sprintf("Asset service is alive. Uptime: %s\n", time.Since(h.startTime)))
	})

	e.GET("/health", func(c echo.Context) error {
		logger.Debugf("[Asset_http] Health check")

		status, details, err := h.health(c.Request().Context(), false)
		if err != nil || status != http.StatusOK {
			return c.String(http.StatusServiceUnavailable, details)
		}

		return c.String(http.StatusOK, details)
	})

	if tSettings.PrometheusEndpoint != "" {
		e.GET(tSettings.PrometheusEndpoint, echo.WrapHandler(promhttp.Handler()))
	}

	if tSettings.StatsPrefix != "" {
		e.GET(tSettings.StatsPrefix+"stats", AdaptStdHandler(gocore.HandleStats))
		e.GET(tSettings.StatsPrefix+"reset", AdaptStdHandler(gocore.ResetStats))
		e.GET(tSettings.StatsPrefix+"*", AdaptStdHandler(gocore.HandleOther))
	}

	apiGroup := e.Group(apiPrefix)

	apiGroup.GET("/status", h.GetStatus)
	apiGroup.GET("/blocks", h.GetBlocks)
	apiGroup.GET("/block/:hashOrHeight", h.GetBlock)
	apiGroup.GET("/tx/:txid", h.GetTransaction)
	apiGroup.GET("/address/:address", h.GetAddress)
	apiGroup.GET("/masternodes", h.GetMasternodes)
	apiGroup.GET("/masternode/:protxhash", h.GetMasternode)
	apiGroup.GET("/governance", h.GetGovernance)
	apiGroup.GET("/network", h.GetNetwork)
	apiGroup.GET("/mempool", h.GetMempool)
	apiGroup.GET("/search", h.Search)
	apiGroup.GET("/ws", h.HandleWebSocket)

	apiGroup.GET("/*", notFound)

	if dir := tSettings.Asset.StaticDir; dir != "" && isDir(dir) {
		e.GET("/*", staticHandler(dir))
	} else {
		if dir != "" {
			logger.Warnf("[Asset_http] static dir %q not found, only the api is served", dir)
		}

		e.GET("/*", notFound)
	}

	return h, nil
}

func AdaptStdHandler(handler func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return func(c echo.Context) error {
		handler(c.Response().Writer, c.Request())
		return nil
	}
}

// staticHandler serves files below root and falls back to root/index.html for client side routes.
func staticHandler(root string) echo.HandlerFunc {
	index := filepath.Join(root, "index.html")

	return func(c echo.Context) error {
		name := filepath.Join(root, filepath.FromSlash(filepath.Clean("/"+c.Request().URL.Path)))

		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			return c.File(name)
		}

		if _, err := os.Stat(index); err != nil {
			return notFound(c)
		}

		return c.File(index)
	}
}

func notFound(c echo.Context) error {
	return sendError(c, http.StatusNotFound, int32(errors.ERR_NOT_FOUND), errors.NewNotFoundError("no route for %s", c.Request().URL.Path))
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// SetHealthCheck replaces the repository health behind /health, typically with the
// service manager's aggregate.
func (h *HTTP) SetHealthCheck(fn HealthFunc) {
	if fn != nil {
		h.health = fn
	}
}

func (h *HTTP) Init(_ context.Context) error {
	return nil
}

// Listen binds addr. Start serves on the bound listener, so callers can report readiness
// only once the port is taken.
func (h *HTTP) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.NewServiceError("[Asset] failed to listen on %s", addr, err)
	}

	h.e.Listener = listener

	return nil
}

// Addr is the bound address, nil before Listen.
func (h *HTTP) Addr() net.Addr {
	if h.e.Listener == nil {
		return nil
	}

	return h.e.Listener.Addr()
}

// Start serves on addr until ctx is done.
func (h *HTTP) Start(ctx context.Context, addr string) error {
	if h.e.Listener == nil {
		if err := h.Listen(addr); err != nil {
			return err
		}
	}

	go func() {
		<-ctx.Done()

		h.logger.Infof("[Asset] HTTP (impl) service shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := h.e.Shutdown(shutdownCtx); err != nil {
			h.logger.Errorf("[Asset] HTTP (impl) service shutdown error: %s", err)
		}
	}()

	servicemanager.AddListenerInfo(fmt.Sprintf("Asset HTTP listening on %s", h.Addr()))

	err := h.e.Start(addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.NewServiceError("[Asset] HTTP server failed on %s", addr, err)
	}

	return nil
}

func (h *HTTP) Stop(ctx context.Context) error {
	return h.e.Shutdown(ctx)
}

// ServeHTTP lets the configured echo instance be mounted on any http server.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.e.ServeHTTP(w, r)
}

// Middleware to log HTTP requests using the custom logger
func customLoggerMiddleware(logger ulogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			duration := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			logger.Infof("http request: Method=%s, URI=%s, RemoteAddr=%s Status=%d, Duration=%v, err=%v", c.Request().Method, c.Request().RequestURI, c.Request().RemoteAddr, status, duration, err)

			return err
		}
	}
}
