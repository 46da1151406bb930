package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateReply(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected request payload: %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "Hi "}, {"text": "there!"}},
				}},
			},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "gemini-2.5-flash", srv.URL)
	reply, err := c.GenerateReply(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Hi there!" {
		t.Errorf("got reply %q, want %q", reply, "Hi there!")
	}
	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("unexpected request path %q", gotPath)
	}
}

func TestGenerateReplyAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 400, "message": "API key not valid"},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("bad-key", "gemini-2.5-flash", srv.URL)
	if _, err := c.GenerateReply(context.Background(), "hello"); err == nil {
		t.Error("expected error for API error response")
	}
}

func TestGenerateReplyNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "gemini-2.5-flash", srv.URL)
	if _, err := c.GenerateReply(context.Background(), "hello"); err == nil {
		t.Error("expected error when no candidates are returned")
	}
}
