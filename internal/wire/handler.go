package wire

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/matthewbaird/framegen/internal/generate"
	"github.com/matthewbaird/framegen/internal/store"
)

// Handler manages WebSocket connections for live generation.
type Handler struct {
	sessions *Sessions
	store    store.Store
}

// NewHandler creates a WebSocket handler. Runs are recorded in s.
func NewHandler(sessions *Sessions, s store.Store) *Handler {
	return &Handler{sessions: sessions, store: s}
}

// ServeHTTP upgrades to WebSocket and runs the message loop.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("ws: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	sess := h.sessions.Create(cancel)
	defer h.sessions.Remove(sess.ID)

	h.send(ctx, conn, ServerMessage{
		Type: "session",
		Data: SessionData{SessionID: sess.ID},
	})

	for {
		var msg ClientMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			switch {
			case websocket.CloseStatus(err) != -1:
				log.Printf("ws: connection closed: %v", websocket.CloseStatus(err))
			case ctx.Err() != nil && r.Context().Err() == nil:
				log.Printf("ws: session %s idle, closing", sess.ID)
			}
			return
		}
		h.sessions.Touch(sess.ID)

		switch msg.Type {
		case "generate":
			h.handleGenerate(ctx, conn, sess, msg)
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "unknown_type", fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (h *Handler) handleGenerate(ctx context.Context, conn *websocket.Conn, sess *Session, msg ClientMessage) {
	var data GenerateData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid generate data")
		return
	}
	if data.Source == "" {
		h.sendError(ctx, conn, msg.ID, "empty_source", "empty description")
		return
	}
	if data.File == "" {
		data.File = "ws.cue"
	}

	out, run, err := generate.Record(ctx, h.store, data.File, []byte(data.Source), data.FuncName)
	if run != nil {
		sess.AddRun(run.ID.String())
	}
	if err != nil {
		h.sendError(ctx, conn, msg.ID, generate.Code(err), err.Error())
		return
	}
	h.send(ctx, conn, ServerMessage{
		Type:      "result",
		RequestID: msg.ID,
		Data:      out,
	})
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Printf("ws: write error: %v", err)
	}
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data: ErrorData{
			Code:    code,
			Message: message,
		},
	})
}
