package handlers

import (
	"net/http"
	"slices"

	"go-resume-coach/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route onto a gin engine with logging, recovery and CORS.
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(h.cfg.AllowedOrigins) == 0 || slices.Contains(h.cfg.AllowedOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = h.cfg.AllowedOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	//server rendered views
	r.GET("/", h.Index)
	r.POST("/shell/demo", h.ShowDemo)
	r.POST("/shell/landing", h.ShowLanding)
	r.POST("/shell/contact/open", h.OpenContact)
	r.POST("/shell/contact/close", h.CloseContact)
	r.POST("/demo/job", h.SubmitJob)
	r.POST("/demo/resume", h.SubmitResume)
	r.POST("/demo/resume/reset", h.ResetResume)
	r.POST("/demo/chat", h.SubmitChat)
	r.POST("/contact", h.SubmitContact)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)
		api.GET("/session", h.GetSession)
		api.PUT("/job", h.PutJob)
		api.POST("/resume", h.PostResume)
		api.DELETE("/resume", h.DeleteResume)
		api.POST("/chat", h.PostChat)
		api.GET("/messages", h.GetMessages)
		api.GET("/messages/export", h.ExportMessages)
		api.POST("/contact", h.PostContactJSON)
		api.GET("/ws", h.ServeWS)
	}

	return r, nil
}
