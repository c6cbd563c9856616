package models

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the coaching transcript. Never mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Greeting opens every new transcript.
const Greeting = "Hello! I'm your AI Career Coach. Upload your resume (PDF or TXT) and tell me about the job you're targeting, and I'll provide personalized feedback to help you land that position."
