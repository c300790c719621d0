package app

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"survey-bot/internal/domain"
)

// Catalog is the read-only question list the engine steps through.
type Catalog interface {
	Question(i int) (domain.Question, bool)
	Len() int
}

// Transport delivers messages to the chat platform.
type Transport interface {
	SendText(chatID int64, text string) (int, error)
	SendButtons(chatID int64, text string, buttons []Button) (int, error)
	// DeleteMessage is best-effort; callers swallow failures.
	DeleteMessage(chatID int64, messageID int) error
}

// RowSink persists one row per completed survey.
type RowSink interface {
	AppendRow(ctx context.Context, cells []string) error
}

// Messages holds the user-facing replies the engine sends.
type Messages struct {
	Welcome      string
	NoActiveQuiz string
	Saved        string
	SaveFailed   string
}

// Engine drives one survey conversation per chat: it sequences questions,
// interprets button and text responses, and finalizes completed sessions
// into the row sink. Events for the same chat are serialized by a per-chat
// lock; distinct chats proceed in parallel.
type Engine struct {
	catalog   Catalog
	store     SessionStore
	transport Transport
	sink      RowSink
	messages  Messages
	now       func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewEngine(catalog Catalog, store SessionStore, transport Transport, sink RowSink, messages Messages) *Engine {
	return NewEngineWithClock(catalog, store, transport, sink, messages, time.Now)
}

// NewEngineWithClock allows deterministic timestamps in tests.
func NewEngineWithClock(catalog Catalog, store SessionStore, transport Transport, sink RowSink, messages Messages, now func() time.Time) *Engine {
	return &Engine{
		catalog:   catalog,
		store:     store,
		transport: transport,
		sink:      sink,
		messages:  messages,
		now:       now,
		locks:     make(map[int64]*sync.Mutex),
	}
}

func (e *Engine) chatLock(chatID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[chatID] = l
	}
	return l
}

// Greet replies to /start with the welcome text.
func (e *Engine) Greet(_ context.Context, chatID int64) {
	if _, err := e.transport.SendText(chatID, e.messages.Welcome); err != nil {
		log.Printf("send welcome to chat %d: %v", chatID, err)
	}
}

// Begin starts a fresh session for the chat, silently discarding any
// in-progress one. An empty catalog finalizes immediately.
func (e *Engine) Begin(ctx context.Context, chatID int64, user domain.User, commandMessageID int) {
	l := e.chatLock(chatID)
	l.Lock()
	defer l.Unlock()

	e.store.Start(chatID, user, commandMessageID)
	e.promptCurrent(ctx, chatID)
}

// HandleCallback processes a button tap. A tap with no active session is a
// stale prompt and is ignored; a payload that does not resolve against the
// current question is a protocol anomaly and is ignored too.
func (e *Engine) HandleCallback(ctx context.Context, chatID int64, messageID int, payload string) {
	l := e.chatLock(chatID)
	l.Lock()
	defer l.Unlock()

	rec, ok := e.store.Get(chatID)
	if !ok {
		log.Printf("callback from chat %d with no active session, ignoring", chatID)
		return
	}
	q, ok := e.catalog.Question(rec.Index)
	if !ok {
		return
	}
	answer, ok := interpretCallback(q, payload)
	if !ok {
		log.Printf("callback payload %q from chat %d does not match question %d, ignoring", payload, chatID, rec.Index+1)
		return
	}

	// The tapped prompt is obsolete the moment it is answered.
	_ = e.transport.DeleteMessage(chatID, messageID)

	e.store.RecordAnswer(chatID, rec.Index, answer)
	e.promptCurrent(ctx, chatID)
}

// HandleText processes a plain text message. Free text is accepted as the
// answer to any question type, buttons shown or not. With no active session
// the user gets a hint instead.
func (e *Engine) HandleText(ctx context.Context, chatID int64, messageID int, text string) {
	l := e.chatLock(chatID)
	l.Lock()
	defer l.Unlock()

	rec, ok := e.store.Get(chatID)
	if !ok {
		if _, err := e.transport.SendText(chatID, e.messages.NoActiveQuiz); err != nil {
			log.Printf("send hint to chat %d: %v", chatID, err)
		}
		return
	}

	// The user's own message is transient too.
	e.store.RecordPrompt(chatID, messageID)
	e.store.RecordAnswer(chatID, rec.Index, text)
	e.promptCurrent(ctx, chatID)
}

// promptCurrent sends the question the session is waiting on, or finalizes
// when every question has been answered. Caller holds the chat lock.
func (e *Engine) promptCurrent(ctx context.Context, chatID int64) {
	rec, ok := e.store.Get(chatID)
	if !ok {
		return
	}
	if PhaseOf(rec, e.catalog.Len()) == PhaseDone {
		e.finalize(ctx, chatID)
		return
	}

	q, ok := e.catalog.Question(rec.Index)
	if !ok {
		return
	}
	prompt := Render(rec.Index, q)

	var messageID int
	var err error
	if len(prompt.Buttons) > 0 {
		messageID, err = e.transport.SendButtons(chatID, prompt.Text, prompt.Buttons)
	} else {
		messageID, err = e.transport.SendText(chatID, prompt.Text)
	}
	if err != nil {
		// The session already advanced; the user sees a gap, so log loudly.
		log.Printf("send question %d to chat %d failed, user is stuck: %v", rec.Index+1, chatID, err)
		return
	}
	e.store.RecordPrompt(chatID, messageID)
}

// finalize snapshots the session, persists the row, cleans up transient
// messages, and tells the user how it went — in that order, so success is
// never reported before the row is durably submitted. Caller holds the chat
// lock.
func (e *Engine) finalize(ctx context.Context, chatID int64) {
	rec, ok := e.store.End(chatID)
	if !ok {
		return
	}

	row := BuildRow(rec, e.catalog.Len(), e.now())
	appendErr := e.sink.AppendRow(ctx, row)
	if appendErr != nil {
		log.Printf("append row for chat %d: %v", chatID, appendErr)
	}

	for _, id := range rec.Pending {
		// May already be gone (prompts deleted on tap); never blocks progress.
		_ = e.transport.DeleteMessage(chatID, id)
	}

	reply := e.messages.Saved
	if appendErr != nil {
		reply = e.messages.SaveFailed
	}
	if _, err := e.transport.SendText(chatID, reply); err != nil {
		log.Printf("send completion reply to chat %d: %v", chatID, err)
	}
}

// interpretCallback resolves a button payload against the question type.
func interpretCallback(q domain.Question, payload string) (string, bool) {
	switch q.Type {
	case domain.QuestionYesNo:
		if payload == "Yes" || payload == "No" {
			return payload, true
		}
	case domain.QuestionMultipleChoice:
		i, err := strconv.Atoi(payload)
		if err == nil && i >= 0 && i < len(q.Options) {
			return q.Options[i], true
		}
	}
	return "", false
}
