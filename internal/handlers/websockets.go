package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cooling_control/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

// Message types sent on the replay stream.
const (
	wsTypeSample = "sample"
	wsTypeDone   = "done"
	wsTypeError  = "error"
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Replay a stored simulation
// @Description  WebSocket stream of {"type":"sample"} messages, one per interval, followed by {"type":"done"}.
// @Tags         simulations
// @Param        id           path   string  true   "Run id"
// @Param        access_token query  string  false  "Bearer token when no Authorization header can be sent"
// @Param        interval     query  string  false  "Go duration between samples, e.g. 200ms (max 10s)"
// @Param        interval_ms  query  int     false  "Milliseconds between samples (max 10000)"
// @Router       /ws/simulations/{id} [get]
// @Security     BearerAuth
func (h *Handler) streamSimulation(c *gin.Context) {
	id := c.Param("id")
	userID := currentUserID(c)
	interval := h.parseInterval(c)

	// Unknown runs are answered over plain HTTP before the upgrade.
	if _, err := h.services.Results.Get(c.Request.Context(), userID, id); err != nil {
		h.writeServiceError(c, errLoadSimulation, "ws_get_run_failed", err, "id", id)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	done := make(chan struct{})
	go h.startReader(conn, done)
	go h.keepAlive(ctx, conn, done, cancel)

	sent := 0
	err = h.services.Replay.Stream(ctx, userID, id, interval, func(s models.Sample) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(wsEnvelope{Type: wsTypeSample, Data: s}); err != nil {
			return err
		}
		sent++
		return nil
	})

	switch {
	case err == nil:
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(wsEnvelope{Type: wsTypeDone, Data: gin.H{"run_id": id, "samples": sent}})
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete"),
			time.Now().Add(writeWait))
	case errors.Is(err, context.Canceled):
		if h.log != nil {
			h.log.Infow("ws_replay_stopped", "id", id, "sent", sent)
		}
	default:
		if h.log != nil {
			h.log.Infow("ws_replay_failed", "id", id, "sent", sent, "err", err)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(wsEnvelope{Type: wsTypeError, Error: errLoadSimulation})
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000. It returns 0 when
// neither is usable, which selects the configured default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return 0
}

// startReader drains incoming frames so control messages are processed and a
// closed peer is noticed.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// keepAlive pings the peer and cancels the replay once the peer is gone.
func (h *Handler) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}, cancel context.CancelFunc) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			cancel()
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				cancel()
				return
			}
		}
	}
}
