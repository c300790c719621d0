package memory

import (
	"testing"

	"survey-bot/internal/domain"
)

func TestSessionLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := store.Start(7, domain.User{ID: 1, Username: "alice"}, 42)
	if session == nil || session.Index != 0 || len(session.Answers) != 0 {
		t.Fatalf("unexpected fresh session %+v", session)
	}
	if len(session.Pending) != 1 || session.Pending[0] != 42 {
		t.Fatalf("expected pending seeded with command id, got %v", session.Pending)
	}

	store.RecordPrompt(7, 101)
	store.RecordAnswer(7, 0, "Yes")

	got, ok := store.Get(7)
	if !ok || got.Index != 1 || got.Answers[0] != "Yes" {
		t.Fatalf("unexpected session after answer: %+v ok=%v", got, ok)
	}
	if len(got.Pending) != 2 {
		t.Fatalf("expected 2 pending ids, got %v", got.Pending)
	}
}

func TestStartReplacesInProgressSession(t *testing.T) {
	store := NewSessionStore()

	store.Start(7, domain.User{ID: 1}, 1)
	store.RecordAnswer(7, 0, "old")

	fresh := store.Start(7, domain.User{ID: 1}, 2)
	if fresh.Index != 0 || len(fresh.Answers) != 0 {
		t.Fatalf("expected replacement session, got %+v", fresh)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	store := NewSessionStore()
	store.Start(7, domain.User{ID: 1}, 1)

	if _, ok := store.End(7); !ok {
		t.Fatalf("expected first end to return the session")
	}
	if _, ok := store.End(7); ok {
		t.Fatalf("expected second end to report absence")
	}
	if _, ok := store.Get(7); ok {
		t.Fatalf("expected session removed")
	}
}

func TestRecordersIgnoreUnknownChat(t *testing.T) {
	store := NewSessionStore()

	store.RecordPrompt(7, 101)
	store.RecordAnswer(7, 0, "Yes")

	if _, ok := store.Get(7); ok {
		t.Fatalf("expected no session to appear")
	}
}
