package httpimpl

import (
	"context"
	"net/http"
	"time"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/services/live"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait    = 10 * time.Second
	wsMaxReadBytes = 4096
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HandleWebSocket upgrades the request and streams live events as JSON text frames until
// the client goes away or the bus closes. A client that falls behind misses the oldest
// events and keeps its connection.
func (h *HTTP) HandleWebSocket(c echo.Context) error {
	if h.bus == nil {
		return sendError(c, http.StatusServiceUnavailable, int32(errors.ERR_SERVICE_UNAVAILABLE), errors.NewServiceUnavailableError("live events are not available"))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already replied to the client
		h.logger.Warnf("[Asset_ws] upgrade failed for %s: %v", c.RealIP(), err)
		return nil
	}

	clientID := uuid.New().String()
	sub := h.bus.Subscribe()

	prometheusAssetWSConnections.Inc()
	h.logger.Infof("[Asset_ws] client %s connected from %s", clientID, c.RealIP())

	ctx, cancel := context.WithCancel(c.Request().Context())

	defer func() {
		cancel()
		sub.Unsubscribe()
		_ = conn.Close()

		prometheusAssetWSConnections.Dec()
		h.logger.Infof("[Asset_ws] client %s disconnected, %d events lagged", clientID, sub.Lagged())
	}()

	go readLoop(conn, cancel)

	h.writeLoop(ctx, conn, sub, clientID)

	return nil
}

// readLoop drains client frames. Pings are answered by the connection's default ping
// handler while reading, a close frame or read error ends the session.
func readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(wsMaxReadBytes)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *HTTP) writeLoop(ctx context.Context, conn *websocket.Conn, sub *live.Subscription, clientID string) {
	for {
		ev, err := sub.Recv(ctx)
		if err != nil {
			var lagErr *live.LagError
			if errors.As(err, &lagErr) {
				prometheusAssetWSLagged.Add(float64(lagErr.Missed))
				h.logger.Warnf("[Asset_ws] client %s lagged, skipped %d events", clientID, lagErr.Missed)

				continue
			}

			if errors.Is(err, live.ErrBusClosed) {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(wsWriteWait))
			}

			return
		}

		payload, err := json.Marshal(ev)
		if err != nil {
			h.logger.Errorf("[Asset_ws] failed to encode %s event: %v", ev.Type, err)
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))

		if err = conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debugf("[Asset_ws] write to client %s failed: %v", clientID, err)
			return
		}

		prometheusAssetWSEvents.WithLabelValues(string(ev.Type)).Inc()
	}
}
