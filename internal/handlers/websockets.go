package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Stream timing. Pings go out before the peer's pong window lapses.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = int(maxInterval / time.Millisecond)
)

// wsEnvelope frames every message pushed to the dashboard socket.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// newUpgrader accepts the same origins the CORS middleware does.
func (h *Handler) newUpgrader() websocket.Upgrader {
	origin := h.opts.CORSOrigin
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if origin == "*" {
				return true
			}
			o := r.Header.Get("Origin")
			return o == "" || o == origin
		},
	}
}

// @Summary      Stats stream
// @Description  WebSocket pushing {type:"stats", data} every ?interval= (or ?interval_ms=), at most 10s. The token may be passed as ?access_token=.
// @Tags         activity
// @Param        interval      query  string  false  "Go duration, e.g. 2s"
// @Param        interval_ms   query  int     false  "Milliseconds"
// @Param        access_token  query  string  false  "Bearer token for browsers"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /api/ws [get]
// @Security     BearerAuth
func (h *Handler) wsConnect(c *gin.Context) {
	every := streamInterval(c.Request.URL.Query())

	upgrader := h.newUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	s := &statsStream{h: h, conn: conn, closed: make(chan struct{})}
	s.run(c.Request.Context(), every)
}

// streamInterval picks the push period. A valid ?interval= wins over
// ?interval_ms=; anything missing, malformed or above maxInterval falls
// back to defaultInterval.
func streamInterval(q url.Values) time.Duration {
	if d, err := time.ParseDuration(q.Get("interval")); err == nil && d > 0 && d <= maxInterval {
		return d
	}
	if ms, err := strconv.Atoi(q.Get("interval_ms")); err == nil && ms > 0 && ms <= maxIntervalMilli {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultInterval
}

// statsStream is one dashboard subscriber.
type statsStream struct {
	h      *Handler
	conn   *websocket.Conn
	closed chan struct{}
}

func (s *statsStream) run(ctx context.Context, every time.Duration) {
	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go s.drain()

	if err := s.push(ctx); err != nil {
		s.logInfo("ws_write_failed_initial", err)
		return
	}

	push := time.NewTicker(every)
	defer push.Stop()
	keepalive := time.NewTicker(pingPeriod)
	defer keepalive.Stop()

	for {
		select {
		case <-s.closed:
			return
		case <-ctx.Done():
			return
		case <-keepalive.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logInfo("ws_ping_failed", err)
				return
			}
		case <-push.C:
			if err := s.push(ctx); err != nil {
				s.logInfo("ws_write_failed", err)
				return
			}
		}
	}
}

// drain discards client frames so pongs and close frames get processed.
// closed is signalled once the peer goes away.
func (s *statsStream) drain() {
	defer close(s.closed)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.logInfo("ws_read_closed", err)
			return
		}
	}
}

// push sends one stats frame, or an error frame if the snapshot failed.
func (s *statsStream) push(ctx context.Context) error {
	msg := wsEnvelope{Type: "stats"}
	st, err := s.h.services.Stats.Snapshot(ctx)
	if err != nil {
		if s.h.log != nil {
			s.h.log.Errorw("ws_stats_snapshot_failed", "err", err)
		}
		msg = wsEnvelope{Type: "error", Error: errServer}
	} else {
		msg.Data = st
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

func (s *statsStream) logInfo(event string, err error) {
	if s.h.log != nil {
		s.h.log.Infow(event, "err", err)
	}
}
