package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kunalgoyal9/gembot-backend/internal/auth"
	"github.com/kunalgoyal9/gembot-backend/internal/middleware"
	"github.com/kunalgoyal9/gembot-backend/internal/models"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// chatSocketFrame is sent to the client for each half of a conversation turn.
type chatSocketFrame struct {
	Type  string              `json:"type"` // "message" or "error"
	Data  *models.ChatMessage `json:"data,omitempty"`
	Error string              `json:"error,omitempty"`
}

// ChatSocket runs the same persisted chat turn over a WebSocket connection.
// Authentication happens before the upgrade: cookie, bearer header, or a
// `token` query parameter for browser WebSocket clients that cannot set headers.
func (h *ChatHandler) ChatSocket(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}

	claims, err := auth.Parse(token, h.JWTSecret)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "user not found", http.StatusUnauthorized)
		return
	}

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		message := strings.TrimSpace(req.Message)
		if message == "" {
			_ = conn.WriteJSON(chatSocketFrame{Type: "error", Error: "message is required"})
			continue
		}

		// Echo the user's message first so the UI can render it immediately.
		_ = conn.WriteJSON(chatSocketFrame{Type: "message", Data: &models.ChatMessage{
			UserID:    user.ID.String(),
			Role:      models.ChatRoleUser,
			Message:   message,
			CreatedAt: time.Now().UTC(),
		}})

		text, err := h.chatTurn(r.Context(), user.ID.String(), message)
		if err != nil {
			log.Printf("chatbot ws: %v", err)
			_ = conn.WriteJSON(chatSocketFrame{Type: "error", Error: "failed to process message"})
			continue
		}

		_ = conn.WriteJSON(chatSocketFrame{Type: "message", Data: &models.ChatMessage{
			UserID:    user.ID.String(),
			Role:      models.ChatRoleBot,
			Message:   text,
			CreatedAt: time.Now().UTC(),
		}})
	}
}
