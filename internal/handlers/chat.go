package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kunalgoyal9/gembot-backend/internal/middleware"
	"github.com/kunalgoyal9/gembot-backend/internal/models"
	"github.com/kunalgoyal9/gembot-backend/internal/response"
	"github.com/kunalgoyal9/gembot-backend/internal/store"
)

// Generator produces a text completion for a user message.
type Generator interface {
	GenerateReply(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	Users store.UserStore
	Chats store.ChatStore
	AI    Generator

	// JWTSecret is used by the WebSocket transport, which authenticates
	// before upgrading instead of going through the HTTP middleware.
	JWTSecret string
}

type chatRequest struct {
	Message string `json:"message"`
}

// SendMessage persists the user's message, proxies it to the generative model
// and persists the reply. The two writes are independent: an upstream failure
// after the first insert leaves the user message without a paired reply.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		response.Unauthorized(w, "user not found")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.Message == "" {
		response.BadRequest(w, "message is required")
		return
	}

	text, err := h.chatTurn(r.Context(), user.ID.String(), req.Message)
	if err != nil {
		log.Printf("chatbot: %v", err)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  http.StatusOK,
		"message": "message sent successfully",
		"data":    text,
	})
}

// GetHistory returns the full chat log for the authenticated user, oldest first.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		response.Unauthorized(w, "user not found")
		return
	}

	msgs, err := h.Chats.ListMessages(r.Context(), user.ID.String())
	if err != nil {
		log.Printf("chatbot: history fetch failed: %v", err)
		response.Error(w, http.StatusInternalServerError, "failed to fetch chats")
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  http.StatusOK,
		"data":    msgs,
	})
}

// chatTurn runs one conversation turn: store the user's message, ask the model,
// store the reply, return the reply text.
func (h *ChatHandler) chatTurn(ctx context.Context, userID, message string) (string, error) {
	userMsg := &models.ChatMessage{
		UserID:    userID,
		Role:      models.ChatRoleUser,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Chats.SaveMessage(ctx, userMsg); err != nil {
		return "", err
	}

	text, err := h.AI.GenerateReply(ctx, message)
	if err != nil {
		return "", err
	}

	botMsg := &models.ChatMessage{
		UserID:    userID,
		Role:      models.ChatRoleBot,
		Message:   text,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Chats.SaveMessage(ctx, botMsg); err != nil {
		return "", err
	}

	return text, nil
}
