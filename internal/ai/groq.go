package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/config"
)

type groqClient struct {
	url         string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewGroqClient creates a client for an OpenAI-compatible chat/completions
// endpoint (Groq by default).
func NewGroqClient(cfg config.ChatConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, apperr.Configuration("chat API key is not configured, add GROQ_API_KEY to your .env file")
	}
	if cfg.URL == "" {
		return nil, apperr.Configuration("chat API URL is not configured, add GROQ_API_URL to your .env file")
	}

	return &groqClient{
		url:         cfg.URL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{},
	}, nil
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Messages    []groqMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message
func (c *groqClient) Complete(ctx context.Context, prompt string) (string, error) {
	log.Printf("🤖 Sending message to chat API, prompt length: %d", len(prompt))

	reqBody := groqRequest{
		Messages: []groqMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", apperr.Configuration("invalid chat API URL %q: %v", c.url, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.Network("chat request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Network("failed to read chat response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("❌ Chat API error %d: %s", resp.StatusCode, string(bodyBytes))
		return "", apperr.Upstream("chat API request failed", resp.StatusCode, string(bodyBytes))
	}

	var groqResp groqResponse
	if err := json.Unmarshal(bodyBytes, &groqResp); err != nil {
		return "", apperr.Malformed("failed to decode chat response", err)
	}

	log.Printf("✅ Chat API response received, choices: %d", len(groqResp.Choices))

	if len(groqResp.Choices) == 0 {
		return FallbackReply, nil
	}
	return replyOrFallback(groqResp.Choices[0].Message.Content), nil
}
