package web

import (
	"bytes"
	"io/fs"
	"testing"
	"time"

	"go-resume-coach/internal/config"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/notify"
	"go-resume-coach/internal/session"
	"go-resume-coach/internal/shell"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		absent   []string
	}{
		{
			name:     "Headings and lists",
			in:       "## Skills\n- Go\n- **Kafka**",
			contains: []string{"<h2>Skills</h2>", "<li>Go</li>", "<strong>Kafka</strong>"},
		},
		{
			name:     "GFM table",
			in:       "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:   "Raw HTML is dropped",
			in:     "hi <script>alert(1)</script>",
			absent: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(RenderMarkdown(tt.in))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, bad := range tt.absent {
				assert.NotContains(t, out, bad)
			}
		})
	}
}

func TestUploadStatus(t *testing.T) {
	assert.Equal(t, "No file uploaded", UploadStatus(models.ResumeState{Status: models.UploadNone}))
	assert.Equal(t, "Processing file...", UploadStatus(models.ResumeState{Status: models.UploadUploading}))
	assert.Equal(t, "✓ cv.txt (4 characters)", UploadStatus(models.ResumeState{Status: models.UploadSuccess, FileName: "cv.txt", Text: "Jane"}))
	assert.Equal(t, "✗ bad file", UploadStatus(models.ResumeState{Status: models.UploadError, Error: "bad file"}))
	assert.Equal(t, "✗ Upload failed", UploadStatus(models.ResumeState{Status: models.UploadError}))
}

func render(t *testing.T, v View) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index", v))
	return buf.String()
}

func TestIndexRendersCurrentView(t *testing.T) {
	landing := render(t, View{Snapshot: session.Snapshot{State: shell.State{Page: shell.PageLanding}}})
	assert.Contains(t, landing, "Transform Your Career with")
	assert.NotContains(t, landing, "Let's Connect")

	demo := render(t, View{
		Snapshot: session.Snapshot{
			State:  shell.State{Page: shell.PageDemo, ContactOpen: true},
			Job:    models.JobContext{Title: "Data Analyst"},
			Resume: models.ResumeState{Status: models.UploadSuccess, FileName: "cv.pdf", Text: "abc"},
			Messages: []models.Message{
				{ID: "1", Role: models.RoleAssistant, Content: "**Hello**", CreatedAt: time.Now()},
				{ID: "2", Role: models.RoleUser, Content: "<b>hi</b>", CreatedAt: time.Now()},
			},
		},
		Contact:     config.ContactConfig{Email: "coach@example.com"},
		ContactForm: true,
		MaxUploadMB: 10,
		Notice:      &notify.Event{Level: notify.LevelSuccess, Title: "Message sent"},
	})
	assert.Contains(t, demo, "AI Career Coach Demo")
	assert.Contains(t, demo, `value="Data Analyst"`)
	assert.Contains(t, demo, "✓ cv.pdf (3 characters)")
	assert.Contains(t, demo, "<strong>Hello</strong>")
	assert.Contains(t, demo, "&lt;b&gt;hi&lt;/b&gt;", "user text must be escaped")
	assert.Contains(t, demo, "Let's Connect")
	assert.Contains(t, demo, "mailto:coach@example.com")
	assert.Contains(t, demo, `action="/contact"`)
	assert.Contains(t, demo, "Max 10MB")
	assert.Contains(t, demo, "Message sent")
}

func TestStaticFiles(t *testing.T) {
	_, err := fs.Stat(Static(), "app.js")
	assert.NoError(t, err)
	_, err = fs.Stat(Static(), "app.css")
	assert.NoError(t, err)
}
