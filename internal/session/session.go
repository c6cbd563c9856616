package session

import (
	"strings"
	"sync"

	"go-resume-coach/internal/ai"
	"go-resume-coach/internal/conversation"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/notify"
	"go-resume-coach/internal/opstate"
	"go-resume-coach/internal/shell"
	"go-resume-coach/internal/upload"
)

// Session owns every piece of state for the single demo user.
type Session struct {
	Shell   *shell.Shell
	Uploads *upload.Orchestrator
	Chat    *conversation.Manager

	mu  sync.RWMutex
	job models.JobContext
}

func New(client ai.Client, conv upload.Converter, notifier notify.Notifier) *Session {
	s := &Session{
		Shell:   shell.New(),
		Uploads: upload.New(conv, notifier),
	}
	s.Chat = conversation.NewManager(client, s, notifier)
	return s
}

// SetJobContext replaces the target job wholesale. Fields are stored trimmed.
func (s *Session) SetJobContext(job models.JobContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.job = models.JobContext{
		Title:           strings.TrimSpace(job.Title),
		Requirements:    strings.TrimSpace(job.Requirements),
		ExperienceLevel: strings.TrimSpace(job.ExperienceLevel),
	}
}

func (s *Session) JobContext() models.JobContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job
}

func (s *Session) ResumeText() string {
	return s.Uploads.Text()
}

type Snapshot struct {
	shell.State
	Job         models.JobContext  `json:"job"`
	Resume      models.ResumeState `json:"resume"`
	ResumeChars int                `json:"resume_chars"`
	UploadState opstate.State      `json:"upload_state"`
	ChatState   opstate.State      `json:"chat_state"`
	ChatError   string             `json:"chat_error,omitempty"`
	Messages    []models.Message   `json:"messages"`
}

// Snapshot is a consistent-enough copy of the session for rendering.
func (s *Session) Snapshot() Snapshot {
	resume := s.Uploads.State()
	return Snapshot{
		State:       s.Shell.State(),
		Job:         s.JobContext(),
		Resume:      resume,
		ResumeChars: resume.Chars(),
		UploadState: s.Uploads.OpState(),
		ChatState:   s.Chat.OpState(),
		ChatError:   s.Chat.LastError(),
		Messages:    s.Chat.Messages(),
	}
}
