// Package wire defines the WebSocket protocol for live generation: a client
// sends descriptions, the server answers with generated units or errors.
package wire

import (
	"encoding/json"

	"github.com/matthewbaird/framegen/internal/generate"
)

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string          `json:"type"` // "generate", "ping"
	ID   string          `json:"id"`   // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// GenerateData is the payload for "generate" messages.
type GenerateData struct {
	File     string `json:"file"`
	Source   string `json:"source"`
	FuncName string `json:"func_name,omitempty"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type      string `json:"type"`                 // "session", "result", "error", "pong"
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// ResultData carries a generated unit.
type ResultData = generate.Output

// ErrorData carries an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionData carries session information.
type SessionData struct {
	SessionID string `json:"session_id"`
}
