package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"linguachat/pkg/ai"
	"linguachat/pkg/domain"
	"linguachat/pkg/store"
)

type stubGenerator struct {
	reply string
	err   error

	gotSystemPrompt string
	gotTurns        []domain.ChatTurn
}

func (g *stubGenerator) GenerateChat(_ context.Context, systemPrompt string, turns []domain.ChatTurn) (string, error) {
	g.gotSystemPrompt = systemPrompt
	g.gotTurns = turns
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newTestApp(t *testing.T, gen ai.TextGenerator) *App {
	t.Helper()
	a, err := New(Config{
		Store:     store.NewMemoryStore(),
		History:   store.NewMemoryHistoryStore(20, time.Hour),
		Generator: gen,
		JWTSecret: "test-secret",
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestRegisterAndLogin(t *testing.T) {
	a := newTestApp(t, &stubGenerator{reply: "hi"})

	user, token, err := a.Register("A@X.com", "p")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if token == "" {
		t.Fatalf("expected registration token")
	}

	loggedIn, loginToken, err := a.Login("a@x.com", "p")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginToken == "" || loggedIn.ID != user.ID {
		t.Fatalf("login mismatch: token=%q id=%q want %q", loginToken, loggedIn.ID, user.ID)
	}

	resolved, ok := a.UserFromToken(loginToken)
	if !ok || resolved.ID != user.ID {
		t.Fatalf("token did not resolve to the logged-in user: ok=%v id=%q", ok, resolved.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestApp(t, &stubGenerator{reply: "hi"})
	if _, _, err := a.Register("a@x.com", "p"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := a.Register("a@x.com", "other"); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	a := newTestApp(t, &stubGenerator{reply: "hi"})
	if _, _, err := a.Register("", "p"); !errors.Is(err, ErrEmailAndPasswordRequired) {
		t.Fatalf("expected ErrEmailAndPasswordRequired, got %v", err)
	}
	if _, _, err := a.Register("a@x.com", ""); !errors.Is(err, ErrEmailAndPasswordRequired) {
		t.Fatalf("expected ErrEmailAndPasswordRequired, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	a := newTestApp(t, &stubGenerator{reply: "hi"})
	if _, _, err := a.Register("a@x.com", "p"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := a.Login("a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := a.Login("nobody@x.com", "p"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	a := newTestApp(t, &stubGenerator{reply: "hi"})
	user, token, err := a.Register("a@x.com", "p")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resolved, ok := a.UserFromToken(token); !ok || resolved.ID != user.ID {
		t.Fatalf("expected valid token before logout")
	}
	if err := a.Logout(token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := a.UserFromToken(token); ok {
		t.Fatalf("expected token to be rejected after logout")
	}
}

func TestChatAppendsBothTurnsAndUsesHistory(t *testing.T) {
	gen := &stubGenerator{reply: "Nice to meet you!"}
	a := newTestApp(t, gen)
	user, _, err := a.Register("a@x.com", "p")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ctx := context.Background()

	reply, err := a.Chat(ctx, user, "hi", "daily")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "Nice to meet you!" {
		t.Fatalf("reply = %q", reply)
	}
	if len(gen.gotTurns) != 1 || gen.gotTurns[0].Text != "hi" {
		t.Fatalf("first call should carry only the new turn: %+v", gen.gotTurns)
	}

	if _, err := a.Chat(ctx, user, "how are you?", "daily"); err != nil {
		t.Fatalf("second chat: %v", err)
	}
	// Prior user turn, prior model turn, new user turn.
	if len(gen.gotTurns) != 3 {
		t.Fatalf("second call turns = %d, want 3", len(gen.gotTurns))
	}
	if gen.gotTurns[1].Role != domain.RoleModel || gen.gotTurns[1].Text != "Nice to meet you!" {
		t.Fatalf("model turn missing from history: %+v", gen.gotTurns[1])
	}

	transcript, err := a.History(user, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(transcript) != 4 {
		t.Fatalf("transcript rows = %d, want 4", len(transcript))
	}
}

func TestChatTopicPromptSelection(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	a := newTestApp(t, gen)
	user, _, err := a.Register("a@x.com", "p")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ctx := context.Background()

	if _, err := a.Chat(ctx, user, "hi", "school"); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if gen.gotSystemPrompt != SystemPrompt(domain.TopicSchool) {
		t.Fatalf("system prompt = %q", gen.gotSystemPrompt)
	}

	if _, err := a.Chat(ctx, user, "hi", "nonsense"); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if gen.gotSystemPrompt != SystemPrompt(domain.TopicDefault) {
		t.Fatalf("unknown topic should fall back to the generic prompt, got %q", gen.gotSystemPrompt)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	a := newTestApp(t, &stubGenerator{reply: "ok"})
	user, _, err := a.Register("a@x.com", "p")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := a.Chat(context.Background(), user, "   ", "daily"); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
}

func TestChatUpstreamFailure(t *testing.T) {
	gen := &stubGenerator{err: ai.ErrNoCandidates}
	a := newTestApp(t, gen)
	user, _, err := a.Register("a@x.com", "p")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ctx := context.Background()
	if _, err := a.Chat(ctx, user, "hi", "daily"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	// A failed call must not leave a dangling user turn in the window.
	gen.err = nil
	gen.reply = "ok"
	if _, err := a.Chat(ctx, user, "again", "daily"); err != nil {
		t.Fatalf("chat after failure: %v", err)
	}
	if len(gen.gotTurns) != 1 {
		t.Fatalf("expected clean history after failed call, got %d turns", len(gen.gotTurns))
	}
}
