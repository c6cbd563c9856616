package conversation

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"go-resume-coach/internal/ai"
	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/notify"
	"go-resume-coach/internal/opstate"

	"github.com/google/uuid"
)

const OpName = "chat"

// ContextSource supplies what the prompt is built from at send time.
type ContextSource interface {
	JobContext() models.JobContext
	ResumeText() string
}

// Manager keeps the ordered transcript and runs one chat exchange at a time.
type Manager struct {
	client   ai.Client
	source   ContextSource
	notifier notify.Notifier
	op       *opstate.Machine

	now   func() time.Time
	newID func() string

	mu       sync.RWMutex
	messages []models.Message
}

func NewManager(client ai.Client, source ContextSource, notifier notify.Notifier) *Manager {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	m := &Manager{
		client:   client,
		source:   source,
		notifier: notifier,
		op:       opstate.New(OpName),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	m.messages = []models.Message{m.message(models.RoleAssistant, models.Greeting)}
	return m
}

// Send appends text as a user message, asks the chat client and appends the
// reply. Blank text is ignored (nil, nil). On error nothing but the user
// message is added.
func (m *Manager) Send(ctx context.Context, text string) (*models.Message, error) {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil, nil
	}

	if err := m.op.Begin(); err != nil {
		return nil, err
	}
	m.notifier.Notify(notify.StateChange(OpName, string(opstate.StatePending)))

	m.appendMessage(m.message(models.RoleUser, question))

	prompt := ai.BuildCoachPrompt(m.source.JobContext(), m.source.ResumeText(), question)
	log.Printf("💬 Asking coach, question length: %d", len(question))

	reply, err := m.client.Complete(ctx, prompt)
	if err != nil {
		log.Printf("❌ Chat failed: %v", err)
		m.op.Fail(err)
		m.notifier.Notify(notify.StateChange(OpName, string(opstate.StateFailed)))
		m.notifier.Notify(notify.Toast(notify.LevelError, "Error", "Failed to get AI response. Please try again."))
		return nil, err
	}

	answer := m.message(models.RoleAssistant, reply)
	m.appendMessage(answer)
	m.op.Succeed()
	m.notifier.Notify(notify.StateChange(OpName, string(opstate.StateSucceeded)))

	return &answer, nil
}

// Messages returns a copy of the transcript in insertion order.
func (m *Manager) Messages() []models.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func (m *Manager) Pending() bool {
	return m.op.Pending()
}

func (m *Manager) OpState() opstate.State {
	return m.op.State()
}

// LastError is the user-facing message of the last failed send, if any.
func (m *Manager) LastError() string {
	if m.op.State() != opstate.StateFailed {
		return ""
	}
	return apperr.UserMessage(m.op.Err())
}

func (m *Manager) message(role models.Role, content string) models.Message {
	return models.Message{
		ID:        m.newID(),
		Role:      role,
		Content:   content,
		CreatedAt: m.now(),
	}
}

func (m *Manager) appendMessage(msg models.Message) {
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
}
