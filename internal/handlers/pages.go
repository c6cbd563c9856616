package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/notify"
	"go-resume-coach/internal/web"

	"github.com/gin-gonic/gin"
)

// notices are passed through the redirect as ?notice=<key>
var notices = map[string]notify.Event{
	"contact_sent":    notify.Toast(notify.LevelSuccess, "Message sent", "Thanks for reaching out! We'll get back to you soon."),
	"contact_failed":  notify.Toast(notify.LevelError, "Message not sent", "Could not send your message. Please try again."),
	"contact_invalid": notify.Toast(notify.LevelError, "Message not sent", "Please provide your name, a valid email and a message."),
	"contact_off":     notify.Toast(notify.LevelError, "Contact form unavailable", "Please use the email or LinkedIn links instead."),
	"no_file":         notify.Toast(notify.LevelError, "Upload Failed", "Please choose a PDF or TXT file first."),
	"upload_busy":     notify.Toast(notify.LevelInfo, "Please wait", "An upload is already in progress."),
	"chat_busy":       notify.Toast(notify.LevelInfo, "Please wait", "The coach is still answering your last question."),
}

func redirectHome(c *gin.Context, notice string) {
	target := "/"
	if notice != "" {
		target += "?notice=" + notice
	}
	c.Redirect(http.StatusSeeOther, target)
}

// Index renders the current view and overlay
func (h *Handler) Index(c *gin.Context) {
	view := web.View{
		Snapshot:    h.Session.Snapshot(),
		Contact:     h.cfg.Contact,
		ContactForm: h.Contact != nil,
		MaxUploadMB: h.cfg.MaxUploadMB,
	}
	if ev, ok := notices[c.Query("notice")]; ok {
		view.Notice = &ev
	}
	c.HTML(http.StatusOK, "index", view)
}

func (h *Handler) ShowDemo(c *gin.Context) {
	h.Session.Shell.ShowDemo()
	redirectHome(c, "")
}

func (h *Handler) ShowLanding(c *gin.Context) {
	h.Session.Shell.ShowLanding()
	redirectHome(c, "")
}

func (h *Handler) OpenContact(c *gin.Context) {
	h.Session.Shell.OpenContact()
	redirectHome(c, "")
}

func (h *Handler) CloseContact(c *gin.Context) {
	h.Session.Shell.CloseContact()
	redirectHome(c, "")
}

// SubmitJob is POST /demo/job
func (h *Handler) SubmitJob(c *gin.Context) {
	var job models.JobContext
	if err := c.ShouldBind(&job); err != nil {
		log.Printf("⚠️ Invalid job form: %v", err)
	} else {
		h.Session.SetJobContext(job)
	}
	redirectHome(c, "")
}

// SubmitResume is POST /demo/resume. Failures end up in the resume state.
func (h *Handler) SubmitResume(c *gin.Context) {
	file, ok := h.formFile(c)
	if !ok {
		redirectHome(c, "no_file")
		return
	}
	defer closeBody(file)

	ctx := context.WithoutCancel(c.Request.Context())
	if _, err := h.Session.Uploads.Upload(ctx, file); err != nil {
		if apperr.KindOf(err) == apperr.KindBusy {
			redirectHome(c, "upload_busy")
			return
		}
		h.report("upload", err)
	}
	redirectHome(c, "")
}

func (h *Handler) ResetResume(c *gin.Context) {
	if err := h.Session.Uploads.Reset(); err != nil {
		redirectHome(c, "upload_busy")
		return
	}
	redirectHome(c, "")
}

// SubmitChat is POST /demo/chat. Failures end up in the chat state.
func (h *Handler) SubmitChat(c *gin.Context) {
	message := strings.TrimSpace(c.PostForm("message"))

	ctx := context.WithoutCancel(c.Request.Context())
	if _, err := h.Session.Chat.Send(ctx, message); err != nil {
		if apperr.KindOf(err) == apperr.KindBusy {
			redirectHome(c, "chat_busy")
			return
		}
		h.report("chat", err)
	}
	redirectHome(c, "")
}

// SubmitContact is POST /contact from the overlay form
func (h *Handler) SubmitContact(c *gin.Context) {
	if h.Contact == nil {
		redirectHome(c, "contact_off")
		return
	}

	var req models.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectHome(c, "contact_invalid")
		return
	}

	if err := h.Contact.SendContact(req); err != nil {
		log.Printf("❌ Failed to deliver contact request: %v", err)
		redirectHome(c, "contact_failed")
		return
	}
	log.Printf("📬 Contact request delivered from %s", req.Email)
	h.Session.Shell.CloseContact()
	redirectHome(c, "contact_sent")
}
