package handler

import (
	"net/http"
	"time"

	"github.com/AlexZinkM/token-communities/internal/events"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// EventsHandler streams bus events over a websocket
type EventsHandler struct {
	bus     *events.Bus
	session *wallet.Session
	logger  *zap.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(bus *events.Bus, session *wallet.Session, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{bus: bus, session: session, logger: logger}
}

// Stream handles GET /events
// @Summary      Live events
// @Description  Websocket stream of wallet.changed, community.created, token.transferred, token.burned and token.approved events. The current wallet state is sent first.
// @Tags         events
// @Router       /events [get]
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub, cancel := h.bus.Subscribe()
	defer cancel()

	// reader: only pongs and close frames are expected
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	first := events.Event{
		Type: events.WalletChanged,
		Data: NewWalletResponse(h.session.Snapshot()),
		Time: time.Now(),
	}
	if !h.write(conn, first) {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-sub:
			if !ok || !h.write(conn, ev) {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *EventsHandler) write(conn *websocket.Conn, ev events.Event) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(ev); err != nil {
		h.logger.Debug("websocket write failed", zap.String("type", ev.Type), zap.Error(err))
		return false
	}
	return true
}
