package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/config"
	"go-resume-coach/internal/models"
)

// Converter turns a PDF into plain text through a ConvertAPI-style service:
// one multipart submit, then one GET of the first stored output file.
type Converter struct {
	url        string
	secret     string
	httpClient *http.Client
}

func New(cfg config.ConvertConfig) (*Converter, error) {
	if cfg.URL == "" {
		return nil, apperr.Configuration("conversion API URL is not configured, add CONVERT_API_URL to your .env file")
	}
	if cfg.Secret == "" {
		return nil, apperr.Configuration("conversion API secret is not configured, add CONVERT_API_SECRET to your .env file")
	}
	return &Converter{
		url:        cfg.URL,
		secret:     cfg.Secret,
		httpClient: &http.Client{},
	}, nil
}

// Convert uploads body as fileName and returns the trimmed text of the first output file
func (c *Converter) Convert(ctx context.Context, fileName string, body io.Reader) (string, error) {
	log.Printf("📄 Converting %s to text...", fileName)

	files, err := c.submit(ctx, fileName, body)
	if err != nil {
		return "", err
	}

	first := files[0]
	if first.URL == "" {
		return "", apperr.Malformed("conversion response has no file URL", nil)
	}
	log.Printf("📥 Fetching converted file %s (%d bytes)", first.FileName, first.FileSize)

	text, err := c.fetch(ctx, first.URL)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.EmptyContent("No text could be extracted from the PDF")
	}

	log.Printf("✅ Converted %s: %d characters", fileName, len([]rune(text)))
	return text, nil
}

func (c *Converter) submit(ctx context.Context, fileName string, body io.Reader) ([]models.ConvertedFile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("File", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart file part: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, apperr.Read("failed to read the uploaded file", err)
	}
	if err := w.WriteField("Secret", c.secret); err != nil {
		return nil, fmt.Errorf("failed to write Secret field: %w", err)
	}
	if err := w.WriteField("StoreFile", "true"); err != nil {
		return nil, fmt.Errorf("failed to write StoreFile field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, apperr.Configuration("invalid conversion API URL %q: %v", c.url, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Network("conversion request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Network("failed to read conversion response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("❌ Conversion API error %d: %s", resp.StatusCode, string(respBody))
		return nil, apperr.Upstream(upstreamMessage("PDF conversion failed", respBody), resp.StatusCode, string(respBody))
	}

	var result models.ConversionResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, apperr.Malformed("failed to decode conversion response", err)
	}
	if len(result.Files) == 0 {
		return nil, apperr.NoOutput("no converted files received")
	}
	return result.Files, nil
}

func (c *Converter) fetch(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", apperr.Malformed("invalid converted file URL", err)
	}
	req.Header.Set("Accept", "text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.Network("failed to fetch converted text", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Network("failed to read converted text", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperr.Upstream("failed to fetch converted text", resp.StatusCode, string(body))
	}
	return string(body), nil
}

// endpoint appends ?Secret= while keeping any query already on the URL
func (c *Converter) endpoint() (string, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return "", apperr.Configuration("invalid conversion API URL %q: %v", c.url, err)
	}
	q := u.Query()
	q.Set("Secret", c.secret)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// upstreamMessage adds the service's own Message field when the body carries one
func upstreamMessage(prefix string, body []byte) string {
	var payload struct {
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Sprintf("%s: %s", prefix, payload.Message)
	}
	return prefix
}
