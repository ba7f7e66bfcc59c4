// Package conversation holds the append-only copilot chat history for one
// session. Messages are never mutated or removed.
package conversation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"esgcopilot/internal/logging"
	"esgcopilot/internal/types"
)

// WelcomeText is the fixed first message of every session.
const WelcomeText = "Hi! I'm your ESG Copilot. I can help you understand questions, calculate metrics, or draft content for your report. How can I help today?"

// Log is the ordered chat transcript. The zero value is not usable; create
// one with New so the welcome turn is always first.
type Log struct {
	mu       sync.RWMutex
	messages []types.ChatMessage
	now      func() time.Time
}

// New creates a log seeded with the welcome message.
func New() *Log {
	return newLog(time.Now)
}

func newLog(now func() time.Time) *Log {
	return &Log{
		now: now,
		messages: []types.ChatMessage{{
			ID:        "welcome",
			Role:      types.RoleModel,
			Text:      WelcomeText,
			Timestamp: now(),
		}},
	}
}

// Messages returns a copy of the transcript in append order.
func (l *Log) Messages() []types.ChatMessage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]types.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of turns.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// AppendUserMessage appends a user turn with a fresh id and returns it.
func (l *Log) AppendUserMessage(text string) types.ChatMessage {
	return l.append(types.RoleUser, text)
}

// AppendModelMessage appends a model turn with a fresh id and returns it.
func (l *Log) AppendModelMessage(text string) types.ChatMessage {
	return l.append(types.RoleModel, text)
}

func (l *Log) append(role types.ChatRole, text string) types.ChatMessage {
	msg := types.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: l.now(),
	}
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()

	logging.Chat("%s turn appended id=%s len=%d", role, msg.ID, len(text))
	return msg
}

// HintID returns the deterministic message id for a question's hint.
func HintID(questionID string) string {
	return fmt.Sprintf("hint-%s", questionID)
}

// EnsureContextualHint appends a one-time model turn acknowledging the
// focused question. Refocusing the same question is idempotent: the hint is
// inserted at most once per question id per session. Reports whether a
// message was appended.
func (l *Log) EnsureContextualHint(q types.Question) bool {
	id := HintID(q.ID)

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if m.ID == id {
			return false
		}
	}
	l.messages = append(l.messages, types.ChatMessage{
		ID:        id,
		Role:      types.RoleModel,
		Text:      fmt.Sprintf("I see you're working on **%s**. Need help with definitions or calculations for *%s*?", q.Topic, q.Text),
		Timestamp: l.now(),
	})
	return true
}
