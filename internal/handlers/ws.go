package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"

	"github.com/jwebster45206/castle-clerk/internal/logger"
	"github.com/jwebster45206/castle-clerk/internal/storage"
	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/typewriter"
)

// StreamMessage is one websocket message. Type is "snapshot", "frame",
// "result" or "error".
type StreamMessage struct {
	Type   string            `json:"type"`
	View   *storage.View     `json:"view,omitempty"`
	Frame  *typewriter.Frame `json:"frame,omitempty"`
	Result *InputResult      `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// stream sends a snapshot followed by every typewriter frame. Text
// messages from the client are treated as input requests.
func (h *SessionHandler) stream(w http.ResponseWriter, r *http.Request) {
	l, ok := h.live(w, r)
	if !ok {
		return
	}
	log := logger.WithSession(h.log, l.ID())

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logger.WithError(log, err).Error("Failed to accept WebSocket")
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			log.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	frames, unsubscribe := l.Subscribe()
	defer unsubscribe()

	view := l.View()
	if err := writeMessage(ctx, ws, StreamMessage{Type: "snapshot", View: &view}); err != nil {
		return
	}

	go func() {
		defer cancel()
		for {
			_, data, err := ws.Read(ctx)
			if err != nil {
				return
			}
			var req chat.InputRequest
			if err := json.Unmarshal(data, &req); err != nil {
				_ = writeMessage(ctx, ws, StreamMessage{Type: "error", Error: "Invalid JSON in message"})
				continue
			}
			if err := req.Validate(); err != nil {
				_ = writeMessage(ctx, ws, StreamMessage{Type: "error", Error: err.Error()})
				continue
			}
			res, _ := h.submit(ctx, l, req.Message)
			if err := writeMessage(ctx, ws, StreamMessage{Type: "result", Result: &res}); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case f, open := <-frames:
			if !open {
				return
			}
			if err := writeMessage(ctx, ws, StreamMessage{Type: "frame", Frame: &f}); err != nil {
				log.Debug("Stream write failed", "error", err)
				return
			}
		}
	}
}

func writeMessage(ctx context.Context, ws *websocket.Conn, msg StreamMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}
