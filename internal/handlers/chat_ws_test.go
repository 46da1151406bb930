package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kunalgoyal9/gembot-backend/internal/auth"
	"github.com/kunalgoyal9/gembot-backend/internal/handlers"
	"github.com/kunalgoyal9/gembot-backend/internal/models"
)

func TestChatSocket(t *testing.T) {
	users := newMockUserStore()
	user := seedUser(t, users, "alice@example.com", "hunter22")
	chats := newMockChatStore()
	ai := &fakeAI{reply: "Hello from the bot"}

	h := &handlers.ChatHandler{Users: users, Chats: chats, AI: ai, JWTSecret: testSecret}

	srv := httptest.NewServer(http.HandlerFunc(h.ChatSocket))
	defer srv.Close()

	token, err := auth.NewAccessToken(user.ID.String(), testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"message": "hello"}); err != nil {
		t.Fatal(err)
	}

	// First frame echoes the user's message, second carries the bot reply.
	var frames []struct {
		Type string              `json:"type"`
		Data *models.ChatMessage `json:"data"`
	}
	for i := 0; i < 2; i++ {
		var frame struct {
			Type string              `json:"type"`
			Data *models.ChatMessage `json:"data"`
		}
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatal(err)
		}
		frames = append(frames, frame)
	}

	if frames[0].Data == nil || frames[0].Data.Role != models.ChatRoleUser {
		t.Errorf("first frame is %+v, want user echo", frames[0])
	}
	if frames[1].Data == nil || frames[1].Data.Role != models.ChatRoleBot || frames[1].Data.Message != ai.reply {
		t.Errorf("second frame is %+v, want bot reply", frames[1])
	}

	if len(chats.saved) != 2 {
		t.Errorf("got %d stored messages, want 2", len(chats.saved))
	}
}

func TestChatSocketRejectsMissingToken(t *testing.T) {
	users := newMockUserStore()
	h := &handlers.ChatHandler{Users: users, Chats: newMockChatStore(), AI: &fakeAI{}, JWTSecret: testSecret}

	srv := httptest.NewServer(http.HandlerFunc(h.ChatSocket))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 handshake rejection, got %+v", resp)
	}
}
