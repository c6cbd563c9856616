package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type langChainClient struct {
	llm         llms.Model
	temperature float64
	maxTokens   int
}

// NewLangChainClient goes through langchaingo's OpenAI-compatible model instead
// of the hand-rolled HTTP client. cfg.URL may be the full chat/completions URL.
func NewLangChainClient(cfg config.ChatConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, apperr.Configuration("chat API key is not configured, add GROQ_API_KEY to your .env file")
	}
	if cfg.URL == "" {
		return nil, apperr.Configuration("chat API URL is not configured, add GROQ_API_URL to your .env file")
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(baseURL(cfg.URL)),
	)
	if err != nil {
		return nil, apperr.Configuration("failed to create langchain chat model: %v", err)
	}

	return &langChainClient{
		llm:         llm,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (c *langChainClient) Complete(ctx context.Context, prompt string) (string, error) {
	log.Printf("🤖 Sending message through langchain, prompt length: %d", len(prompt))

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		if isEmptyResponse(err) {
			return FallbackReply, nil
		}
		return "", classifyLangChainError(err)
	}
	return replyOrFallback(resp), nil
}

// langchaingo reports non-2xx replies only through the error text
var statusPattern = regexp.MustCompile(`API returned unexpected status code: (\d+)(?::\s*(.*))?`)

func isEmptyResponse(err error) bool {
	if errors.Is(err, openai.ErrEmptyResponse) {
		return true
	}
	return !statusPattern.MatchString(err.Error()) && strings.Contains(err.Error(), "empty response")
}

// classifyLangChainError maps a langchaingo failure onto the same kinds the
// hand-rolled client returns.
func classifyLangChainError(err error) error {
	if m := statusPattern.FindStringSubmatch(err.Error()); m != nil {
		status, convErr := strconv.Atoi(m[1])
		if convErr == nil {
			body := m[2]
			if body == "" {
				body = err.Error()
			}
			return apperr.Upstream("chat API request failed", status, body)
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return apperr.Malformed("failed to decode chat response", err)
	}

	return apperr.Network("langchain chat request failed", err)
}

// baseURL strips the endpoint path, langchaingo appends it itself
func baseURL(url string) string {
	url = strings.TrimRight(url, "/")
	return strings.TrimSuffix(url, "/chat/completions")
}
