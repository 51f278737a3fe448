package ui

import (
	"errors"
	"log/slog"
	"mycalculator/core/history"
	"mycalculator/metrics"
	"mycalculator/models"
	"mycalculator/service/calculator"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const closeGracePeriod = time.Second

var errEmptyMessage = errors.New("message carries neither key nor input")

// socketHub serves the WebSocket keypad. Every connection gets its own
// calculator session; history is shared with the HTTP API.
type socketHub struct {
	mu          sync.Mutex
	connections map[string]*websocket.Conn
	upgrader    websocket.Upgrader
	history     *history.HistoryManager
	logger      *slog.Logger
}

func newSocketHub(hm *history.HistoryManager, origins []string, logger *slog.Logger) *socketHub {
	return &socketHub{
		connections: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(origins),
		},
		history: hm,
		logger:  logger,
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

func (h *socketHub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sessionID := uuid.NewString()
	h.register(sessionID, conn)
	defer h.unregister(sessionID)

	log := h.logger.With("session", sessionID)
	log.Debug("socket session opened")

	calc := calculator.NewCalculator(h.history)
	for {
		var msg models.SocketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("socket read failed", "error", err)
			}
			return
		}

		if err := conn.WriteJSON(reply(calc, msg)); err != nil {
			log.Warn("socket write failed", "error", err)
			return
		}
	}
}

// reply applies one client frame to the session.
func reply(calc *calculator.Calculator, msg models.SocketMessage) models.Result {
	switch {
	case msg.Key != "":
		display, err := calc.Press(msg.Key)
		if err != nil {
			body, _ := errorResult(display, err)
			return body
		}
		return models.Result{Display: display}

	case msg.Input != "":
		result, err := calc.Evaluate(msg.Input)
		if err != nil {
			body, _ := errorResult("", err)
			return body
		}
		return models.Result{Result: result}
	}

	return models.Result{Error: errEmptyMessage.Error()}
}

func (h *socketHub) register(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[id] = conn
	metrics.ActiveSocketSessions.Inc()
}

func (h *socketHub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.connections[id]; ok {
		conn.Close()
		delete(h.connections, id)
		metrics.ActiveSocketSessions.Dec()
	}
}

func (h *socketHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

func (h *socketHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.connections {
		// WriteControl may run alongside the session's own WriteJSON
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(closeGracePeriod))
		conn.Close()
		delete(h.connections, id)
		metrics.ActiveSocketSessions.Dec()
	}
}
