package handlers

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"go-resume-coach/internal/export"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/upload"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message"`
}

// GetSession is GET /api/v1/session
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.Session.Snapshot())
}

// PutJob is PUT /api/v1/job
func (h *Handler) PutJob(c *gin.Context) {
	var job models.JobContext
	if err := c.ShouldBindJSON(&job); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	h.Session.SetJobContext(job)
	c.JSON(http.StatusOK, h.Session.JobContext())
}

// PostResume is POST /api/v1/resume with a multipart "file" field
func (h *Handler) PostResume(c *gin.Context) {
	file, ok := h.formFile(c)
	if !ok {
		badRequest(c, "Missing file field")
		return
	}
	defer closeBody(file)

	//once issued the conversion runs to completion even if the client goes away
	ctx := context.WithoutCancel(c.Request.Context())
	res, err := h.Session.Uploads.Upload(ctx, file)
	if err != nil {
		h.report("upload", err)
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"file_name": res.FileName,
		"bytes":     res.Bytes,
		"chars":     res.Chars,
		"resume":    h.Session.Uploads.State(),
	})
}

// DeleteResume is DELETE /api/v1/resume
func (h *Handler) DeleteResume(c *gin.Context) {
	if err := h.Session.Uploads.Reset(); err != nil {
		errorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Session.Uploads.State())
}

// PostChat is POST /api/v1/chat. Blank messages are ignored with 204.
func (h *Handler) PostChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	reply, err := h.Session.Chat.Send(ctx, req.Message)
	if err != nil {
		h.report("chat", err)
		errorJSON(c, err)
		return
	}
	if reply == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GetMessages is GET /api/v1/messages
func (h *Handler) GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.Session.Chat.Messages()})
}

// ExportMessages sends the transcript as an xlsx download
func (h *Handler) ExportMessages(c *gin.Context) {
	snap := h.Session.Snapshot()

	var buf bytes.Buffer
	if err := export.WriteTranscript(&buf, snap.Messages, snap.Job, snap.Resume); err != nil {
		log.Printf("❌ Transcript export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not export the conversation", "kind": "export"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="career-coach-transcript.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// PostContactJSON is POST /api/v1/contact
func (h *Handler) PostContactJSON(c *gin.Context) {
	if h.Contact == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Contact form is not available", "kind": "unavailable"})
		return
	}

	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide your name, a valid email and a message")
		return
	}

	if err := h.Contact.SendContact(req); err != nil {
		log.Printf("❌ Failed to deliver contact request: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not send your message. Please try again.", "kind": "upstream"})
		return
	}
	log.Printf("📬 Contact request delivered from %s", req.Email)
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

// ServeWS is GET /api/v1/ws
func (h *Handler) ServeWS(c *gin.Context) {
	if h.Hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Notifications are not available", "kind": "unavailable"})
		return
	}
	h.Hub.ServeWS(c.Writer, c.Request, h.Session.Snapshot())
}

func (h *Handler) formFile(c *gin.Context) (upload.File, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		return upload.File{}, false
	}
	f, err := fh.Open()
	if err != nil {
		log.Printf("❌ Failed to open uploaded file: %v", err)
		return upload.File{}, false
	}
	return upload.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, true
}

func closeBody(f upload.File) {
	if closer, ok := f.Body.(interface{ Close() error }); ok {
		closer.Close()
	}
}
