package memory

import (
	"sync"

	"survey-bot/internal/app"
	"survey-bot/internal/domain"
)

// SessionStore is the in-memory implementation of app.SessionStore.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*app.Session),
	}
}

func (s *SessionStore) Start(chatID int64, user domain.User, commandMessageID int) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := app.NewSession(chatID, user, commandMessageID)
	s.sessions[chatID] = session
	return session
}

func (s *SessionStore) Get(chatID int64) (*app.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	return session, ok
}

func (s *SessionStore) RecordPrompt(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return
	}
	session.Pending = append(session.Pending, messageID)
}

func (s *SessionStore) RecordAnswer(chatID int64, index int, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return
	}
	session.Answers[index] = answer
	session.Index = index + 1
}

func (s *SessionStore) End(chatID int64) (*app.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return nil, false
	}
	delete(s.sessions, chatID)
	return session, true
}
