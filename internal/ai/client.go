package ai

import (
	"context"
	"fmt"
	"strings"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/config"
	"go-resume-coach/internal/models"
)

// FallbackReply replaces a missing or empty completion.
const FallbackReply = "Sorry, I couldn't generate a response. Please try again."

const (
	notSpecified = "Not specified"
	noResume     = "No resume uploaded yet"
)

// Client is the interface for chat-completion providers
type Client interface {
	// Complete sends prompt as a single user message and returns the reply text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewClient builds the provider selected in cfg.
func NewClient(cfg config.ChatConfig) (Client, error) {
	switch cfg.Provider {
	case "", "groq":
		return NewGroqClient(cfg)
	case "langchain":
		return NewLangChainClient(cfg)
	default:
		return nil, apperr.Configuration("unknown chat provider %q", cfg.Provider)
	}
}

// BuildCoachPrompt creates the full prompt for one user question
func BuildCoachPrompt(job models.JobContext, resumeText, question string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert AI Career Coach and Resume Analyzer with years of experience in recruitment and career development.\n\n")

	sb.WriteString("Job Context:\n")
	sb.WriteString(fmt.Sprintf("- Target Job Title: %s\n", orDefault(job.Title, notSpecified)))
	sb.WriteString(fmt.Sprintf("- Job Requirements: %s\n", orDefault(job.Requirements, notSpecified)))
	sb.WriteString(fmt.Sprintf("- Experience Level: %s\n\n", orDefault(job.ExperienceLevel, notSpecified)))

	sb.WriteString("Resume Content:\n")
	sb.WriteString(orDefault(resumeText, noResume))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("User Question: %s\n\n", question))

	sb.WriteString(`Please provide specific, actionable advice to help improve this resume for the target position. Focus on:

1. **Content Analysis**: What's missing or could be improved in the resume content
2. **Skills Alignment**: How well current skills match the job requirements
3. **Keyword Optimization**: Important keywords that should be included
4. **Structure & Format**: Improvements to layout and organization
5. **Achievement Highlighting**: Better ways to showcase accomplishments with quantifiable results
6. **Industry Standards**: Best practices specific to this role/industry

Be specific, constructive, and provide concrete examples where possible. Format your response clearly with sections and bullet points for easy reading.`)

	return sb.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// replyOrFallback trims the model output and substitutes FallbackReply when empty
func replyOrFallback(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return FallbackReply
	}
	return content
}
