package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

// handleWebsocket optimizes every text frame received on the connection
// and answers with the optimized document, or an [ErrorResponse] as JSON.
// Query parameters apply to all frames, except format which is always hpgl.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = nil

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.cfg.MaxBodyBytes)

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read", "err", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		var reply []byte
		res, err := s.runner.Execute(r.Context(), msg, opts)
		if err != nil {
			reply, _ = json.Marshal(errorResponse(err))
		} else {
			reply = []byte(res.Text)
		}
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			s.logger.Debug("websocket write", "err", err)
			return
		}
	}
}
