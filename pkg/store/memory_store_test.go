package store

import (
	"testing"
	"time"

	"linguachat/pkg/domain"
)

func TestMemoryStoreUsers(t *testing.T) {
	ms := NewMemoryStore()
	user := domain.User{ID: "u1", Email: "a@x.com", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	if err := ms.SaveUser(user); err != nil {
		t.Fatalf("save user: %v", err)
	}
	exists, err := ms.HasUserEmail("a@x.com")
	if err != nil || !exists {
		t.Fatalf("expected email to exist: exists=%v err=%v", exists, err)
	}
	byEmail, ok, err := ms.GetUserByEmail("a@x.com")
	if err != nil || !ok || byEmail.ID != "u1" {
		t.Fatalf("get by email: ok=%v err=%v user=%+v", ok, err, byEmail)
	}
	byID, ok, err := ms.GetUserByID("u1")
	if err != nil || !ok || byID.Email != "a@x.com" {
		t.Fatalf("get by id: ok=%v err=%v user=%+v", ok, err, byID)
	}
	if _, ok, _ := ms.GetUserByID("missing"); ok {
		t.Fatalf("expected missing user lookup to fail")
	}
}

func TestMemoryStoreTranscript(t *testing.T) {
	ms := NewMemoryStore()
	for i, text := range []string{"one", "two", "three"} {
		turn := domain.ChatTurn{ID: string(rune('a' + i)), UserID: "u1", Role: domain.RoleUser, Text: text, CreatedAt: time.Now().UTC()}
		if err := ms.AppendTurn(turn); err != nil {
			t.Fatalf("append turn: %v", err)
		}
	}
	turns, err := ms.ListTurns("u1", 2)
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("len = %d, want 2", len(turns))
	}
	if turns[0].Text != "two" || turns[1].Text != "three" {
		t.Fatalf("expected last two turns in order, got %+v", turns)
	}
}
