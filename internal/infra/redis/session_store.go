package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"survey-bot/internal/app"
	"survey-bot/internal/domain"
	"survey-bot/internal/infra/memory"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionStore.
// Notes:
//   - The in-process store stays authoritative; Redis carries a best-effort
//     JSON snapshot of each live session for inspection and recovery.
//   - Mirror failures never affect the conversation; a lost snapshot only
//     means the session is invisible to outside observers.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	inner  *memory.SessionStore
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		inner:  memory.NewSessionStore(),
	}
}

func (s *SessionStore) Start(chatID int64, user domain.User, commandMessageID int) *app.Session {
	session := s.inner.Start(chatID, user, commandMessageID)
	s.mirror(chatID, session)
	return session
}

func (s *SessionStore) Get(chatID int64) (*app.Session, bool) {
	return s.inner.Get(chatID)
}

func (s *SessionStore) RecordPrompt(chatID int64, messageID int) {
	s.inner.RecordPrompt(chatID, messageID)
	if session, ok := s.inner.Get(chatID); ok {
		s.mirror(chatID, session)
	}
}

func (s *SessionStore) RecordAnswer(chatID int64, index int, answer string) {
	s.inner.RecordAnswer(chatID, index, answer)
	if session, ok := s.inner.Get(chatID); ok {
		s.mirror(chatID, session)
	}
}

func (s *SessionStore) End(chatID int64) (*app.Session, bool) {
	session, ok := s.inner.End(chatID)
	if ok {
		_ = s.client.Del(context.Background(), s.key(chatID)).Err()
	}
	return session, ok
}

func (s *SessionStore) mirror(chatID int64, session *app.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	_ = s.client.Set(context.Background(), s.key(chatID), data, s.ttl).Err()
}

func (s *SessionStore) key(chatID int64) string {
	return "survey:session:" + strconv.FormatInt(chatID, 10)
}
