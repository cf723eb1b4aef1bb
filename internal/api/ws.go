package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket session limits.
const (
	wsWriteTimeout = 10 * time.Second
	wsReadTimeout  = 5 * time.Minute
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The engine is stateless and parameter-driven; origin checks belong
	// to the deployment's proxy layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsError mirrors the HTTP error body over the socket.
type wsError struct {
	Error string `json:"error"`
}

// handleWS runs an interactive analysis session: the client streams
// parameter updates as JSON messages and receives a recomputed report for
// each. One session maps to the dashboard's slider/recompute loop.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	s.metrics.WSSessionsActive.Inc()
	defer s.metrics.WSSessionsActive.Dec()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			return
		}

		var req AnalysisRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("ws read: %v", err)
			}
			return
		}
		s.metrics.WSMessages.Inc()

		report, err := s.analyze(&req)

		if werr := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); werr != nil {
			return
		}
		if err != nil {
			if werr := conn.WriteJSON(wsError{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}
		if werr := conn.WriteJSON(report); werr != nil {
			s.logger.Printf("ws write: %v", werr)
			return
		}
	}
}
