package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"time"

	"go-resume-coach/internal/config"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/notify"
	"go-resume-coach/internal/session"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// QuickPrompts are the one-click questions under the chat box.
var QuickPrompts = []string{
	"Please analyze my resume and suggest improvements",
	"How can I improve my skills for this position?",
	"What interview questions should I prepare for?",
}

// View is everything the index template renders.
type View struct {
	session.Snapshot
	Contact     config.ContactConfig
	ContactForm bool
	MaxUploadMB int
	Notice      *notify.Event
}

// raw HTML in model output is dropped, goldmark's renderer is safe unless WithUnsafe is set
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown turns an assistant reply into HTML.
func RenderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		log.Printf("⚠️ Markdown render failed: %v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// UploadStatus is the one-line status shown under the upload button.
func UploadStatus(r models.ResumeState) string {
	switch r.Status {
	case models.UploadUploading:
		return "Processing file..."
	case models.UploadSuccess:
		return fmt.Sprintf("✓ %s (%d characters)", r.FileName, r.Chars())
	case models.UploadError:
		if r.Error == "" {
			return "✗ Upload failed"
		}
		return "✗ " + r.Error
	default:
		return "No file uploaded"
	}
}

var funcs = template.FuncMap{
	"markdown":     RenderMarkdown,
	"uploadStatus": UploadStatus,
	"quickPrompts": func() []string { return QuickPrompts },
	"clock": func(t time.Time) string {
		return t.Format("15:04")
	},
}

// Templates parses the embedded HTML templates; the entry point is "index".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// Static serves app.css and app.js.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
