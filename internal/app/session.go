package app

import (
	"survey-bot/internal/domain"
)

// Session is one chat's in-progress survey attempt. The store owns the
// record; nothing else retains a reference across events.
type Session struct {
	ChatID int64
	User   domain.User
	// Index points at the question currently awaiting an answer.
	Index   int
	Answers map[int]string
	// Pending lists every message id issued during the session (the /quiz
	// command, each prompt, each free-text reply) for cleanup at the end.
	Pending []int
}

// NewSession is exported for store implementations.
func NewSession(chatID int64, user domain.User, commandMessageID int) *Session {
	return &Session{
		ChatID:  chatID,
		User:    user,
		Answers: make(map[int]string),
		Pending: []int{commandMessageID},
	}
}

// SessionStore abstracts how per-chat sessions are stored (in-memory, Redis).
// Calls for the same chat are serialized by the engine; implementations only
// need to be safe across chats.
type SessionStore interface {
	// Start creates the session for a chat, silently replacing any
	// in-progress one (restart, not resume).
	Start(chatID int64, user domain.User, commandMessageID int) *Session
	Get(chatID int64) (*Session, bool)
	// RecordPrompt appends a message id to the cleanup list. No-op when the
	// chat has no active session.
	RecordPrompt(chatID int64, messageID int)
	// RecordAnswer stores the answer for a question index and moves the
	// session on to the next question.
	RecordAnswer(chatID int64, index int, answer string)
	// End removes and returns the session. The second call for the same chat
	// reports absence, which is what prevents a double finalize.
	End(chatID int64) (*Session, bool)
}

// Phase is the explicit state of a chat's conversation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaiting
	PhaseDone
)

// PhaseOf derives the conversation phase from the session record and the
// catalog size. A nil record means no quiz is active for the chat.
func PhaseOf(s *Session, catalogSize int) Phase {
	switch {
	case s == nil:
		return PhaseIdle
	case s.Index < catalogSize:
		return PhaseAwaiting
	default:
		return PhaseDone
	}
}
