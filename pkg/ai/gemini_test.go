package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"linguachat/pkg/domain"
)

func TestGenerateChatSendsOrderedTurnsAndSystemInstruction(t *testing.T) {
	var got generateRequest
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "Hello!"}}}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewGeminiClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.WithBaseURL(srv.URL)

	turns := []domain.ChatTurn{
		{Role: domain.RoleUser, Text: "hi"},
		{Role: domain.RoleModel, Text: "hello"},
		{Role: domain.RoleUser, Text: "how are you?"},
	}
	reply, err := client.GenerateChat(context.Background(), "gemini-1.5-flash", "be friendly", turns)
	if err != nil {
		t.Fatalf("generate chat: %v", err)
	}
	if reply != "Hello!" {
		t.Fatalf("reply = %q, want %q", reply, "Hello!")
	}
	if gotKey != "test-key" {
		t.Fatalf("api key query param = %q, want %q", gotKey, "test-key")
	}
	if gotPath != "/models/gemini-1.5-flash:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "be friendly" {
		t.Fatalf("system instruction not forwarded: %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 3 {
		t.Fatalf("contents length = %d, want 3", len(got.Contents))
	}
	if got.Contents[0].Role != "user" || got.Contents[1].Role != "model" || got.Contents[2].Role != "user" {
		t.Fatalf("roles out of order: %+v", got.Contents)
	}
	if got.Contents[2].Parts[0].Text != "how are you?" {
		t.Fatalf("last turn text = %q", got.Contents[2].Parts[0].Text)
	}
}

func TestGenerateChatEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	client, err := NewGeminiClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.WithBaseURL(srv.URL)
	_, err = client.GenerateChat(context.Background(), "gemini-1.5-flash", "", []domain.ChatTurn{{Role: domain.RoleUser, Text: "hi"}})
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestGenerateChatUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "API key not valid"}})
	}))
	defer srv.Close()

	client, err := NewGeminiClient("bad-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.WithBaseURL(srv.URL)
	_, err = client.GenerateChat(context.Background(), "gemini-1.5-flash", "", []domain.ChatTurn{{Role: domain.RoleUser, Text: "hi"}})
	if err == nil {
		t.Fatalf("expected error from upstream 400")
	}
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient("  "); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}
