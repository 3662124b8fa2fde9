package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ericlevine/pdf417go/internal/metrics"
	"github.com/ericlevine/pdf417go/internal/scan"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// WebSocketResponse answers one frame. Status is "completed" or "error".
type WebSocketResponse struct {
	Status string       `json:"status"`
	Seq    int          `json:"seq"`
	Result *scan.Record `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// websocketHandler runs a streaming session: every binary frame is an
// encoded image and gets one JSON reply, in order.
func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.WebsocketSessions.Inc()
	defer metrics.WebsocketSessions.Dec()
	s.logger.Info("websocket session opened", "remote_addr", r.RemoteAddr)

	conn.SetReadLimit(s.maxUpload)
	readWait := 2 * s.pingInterval
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.ping(conn, done)

	for seq := 0; ; seq++ {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readWait))

		resp := WebSocketResponse{Seq: seq}
		if messageType != websocket.BinaryMessage {
			resp.Status, resp.Error = "error", "expected a binary image frame"
		} else if img, _, err := scan.ReadImage(bytes.NewReader(data)); err != nil {
			resp.Status, resp.Error = "error", "invalid image format"
		} else {
			record := s.decode(img, "", "ws")
			resp.Status, resp.Result = "completed", &record
			if !record.OK() {
				resp.Status = "error"
				resp.Error = record.Error
			}
		}
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warn("websocket write failed", "error", err)
			return
		}
	}
}

func (s *Server) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}
}
