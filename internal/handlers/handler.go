package handlers

import (
	"log"
	"net/http"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/config"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/notify"
	"go-resume-coach/internal/session"

	"github.com/gin-gonic/gin"
)

// ContactSender delivers contact form submissions.
type ContactSender interface {
	SendContact(req models.ContactRequest) error
}

// ErrorReporter is told about failures an operator should look at.
type ErrorReporter interface {
	SendError(op string, err error) error
}

// Handler serves both the HTML views and the JSON API for one session.
// Hub, Contact and Reporter are optional.
type Handler struct {
	Session  *session.Session
	Hub      *notify.Hub
	Contact  ContactSender
	Reporter ErrorReporter
	cfg      *config.Config
}

func NewHandler(cfg *config.Config, sess *session.Session, hub *notify.Hub, contact ContactSender, reporter ErrorReporter) *Handler {
	return &Handler{
		Session:  sess,
		Hub:      hub,
		Contact:  contact,
		Reporter: reporter,
		cfg:      cfg,
	}
}

const kindBadRequest = "bad_request"

func errorJSON(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": apperr.UserMessage(err),
		"kind":  apperr.KindOf(err),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "kind": kindBadRequest})
}

// report forwards failures caused by the remote services or our own config
func (h *Handler) report(op string, err error) {
	if h.Reporter == nil {
		return
	}
	switch apperr.KindOf(err) {
	case apperr.KindConfiguration, apperr.KindUpstream, apperr.KindNetwork, apperr.KindMalformedResponse, apperr.KindNoOutput:
	default:
		return
	}
	go func() {
		if sendErr := h.Reporter.SendError(op, err); sendErr != nil {
			log.Printf("⚠️ Failed to report %s error to Telegram: %v", op, sendErr)
		}
	}()
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AI Career Coach API is running!",
		"status":  "healthy",
	})
}
