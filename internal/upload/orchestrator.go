package upload

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/notify"
	"go-resume-coach/internal/opstate"
)

const OpName = "upload"

// Converter extracts text from a PDF.
type Converter interface {
	Convert(ctx context.Context, fileName string, body io.Reader) (string, error)
}

// File is one user-selected file.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Result is what a successful upload reports back for display.
type Result struct {
	FileName string `json:"file_name"`
	Text     string `json:"text"`
	Bytes    int64  `json:"bytes"`
	Chars    int    `json:"chars"`
}

// Orchestrator owns the session's ResumeState.
type Orchestrator struct {
	conv     Converter
	notifier notify.Notifier
	op       *opstate.Machine

	mu    sync.RWMutex
	state models.ResumeState
}

func New(conv Converter, notifier notify.Notifier) *Orchestrator {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Orchestrator{
		conv:     conv,
		notifier: notifier,
		op:       opstate.New(OpName),
		state:    models.ResumeState{Status: models.UploadNone},
	}
}

// Upload extracts the resume text from f and replaces the stored ResumeState.
// It fails with a Busy error, leaving the state alone, while another upload runs.
func (o *Orchestrator) Upload(ctx context.Context, f File) (Result, error) {
	if err := o.op.Begin(); err != nil {
		return Result{}, err
	}
	o.notifier.Notify(notify.StateChange(OpName, string(opstate.StatePending)))
	o.setState(models.ResumeState{FileName: f.Name, Status: models.UploadUploading})

	log.Printf("📤 Uploading %s (%s, %d bytes)", f.Name, f.ContentType, f.Size)

	res, err := o.extract(ctx, f)
	if err != nil {
		log.Printf("❌ Upload of %s failed: %v", f.Name, err)
		o.setState(models.ResumeState{Status: models.UploadError, Error: apperr.UserMessage(err)})
		o.op.Fail(err)
		o.notifier.Notify(notify.StateChange(OpName, string(opstate.StateFailed)))
		o.notifier.Notify(notify.Toast(notify.LevelError, "Upload Failed", apperr.UserMessage(err)))
		return Result{}, err
	}

	o.setState(models.ResumeState{Text: res.Text, FileName: res.FileName, Status: models.UploadSuccess})
	o.op.Succeed()
	o.notifier.Notify(notify.StateChange(OpName, string(opstate.StateSucceeded)))
	o.notifier.Notify(notify.Toast(notify.LevelSuccess, "Resume uploaded and processed successfully!",
		fmt.Sprintf("Extracted %d characters from %s", res.Chars, res.FileName)))

	log.Printf("✅ Resume %s ready: %d characters", res.FileName, res.Chars)
	return res, nil
}

func (o *Orchestrator) extract(ctx context.Context, f File) (Result, error) {
	if f.Body == nil {
		return Result{}, apperr.Read("No file content received", nil)
	}

	var (
		text string
		size = f.Size
		err  error
	)

	switch detectKind(f.Name, f.ContentType) {
	case kindText:
		var n int
		text, n, err = decodeText(f.Body)
		if size <= 0 {
			size = int64(n)
		}
	case kindPDF:
		o.notifier.Notify(notify.Toast(notify.LevelInfo, "Converting PDF to text...", "This may take a few seconds"))
		body := &countingReader{r: f.Body}
		text, err = o.conv.Convert(ctx, f.Name, body)
		if size <= 0 {
			size = body.n
		}
	default:
		return Result{}, apperr.UnsupportedType(f.ContentType)
	}
	if err != nil {
		return Result{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, apperr.EmptyContent("No text could be extracted from the file")
	}

	return Result{
		FileName: f.Name,
		Text:     text,
		Bytes:    size,
		Chars:    utf8.RuneCountInString(text),
	}, nil
}

// Reset clears the stored resume. Not allowed while an upload runs.
func (o *Orchestrator) Reset() error {
	err := o.op.IfIdle(func() {
		o.setState(models.ResumeState{Status: models.UploadNone})
	})
	if err != nil {
		return err
	}
	log.Println("🧹 Resume cleared")
	return nil
}

func (o *Orchestrator) State() models.ResumeState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Text is the stored resume text, empty unless the last upload succeeded.
func (o *Orchestrator) Text() string {
	return o.State().Text
}

func (o *Orchestrator) OpState() opstate.State {
	return o.op.State()
}

func (o *Orchestrator) setState(s models.ResumeState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
