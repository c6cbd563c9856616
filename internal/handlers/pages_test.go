package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/shell"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) page(t *testing.T) string {
	t.Helper()
	w := e.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))
}

func TestShellNavigation(t *testing.T) {
	env := newTestEnv(t, false)
	assert.Contains(t, env.page(t), "Transform Your Career with")

	assertRedirect(t, env.do(httptest.NewRequest(http.MethodPost, "/shell/demo", nil)), "/")
	assert.Contains(t, env.page(t), "AI Career Coach Demo")

	assertRedirect(t, env.do(httptest.NewRequest(http.MethodPost, "/shell/contact/open", nil)), "/")
	body := env.page(t)
	assert.Contains(t, body, "Let's Connect")
	assert.Contains(t, body, "AI Career Coach Demo")
	assert.NotContains(t, body, `action="/contact"`, "form is hidden without a contact sender")

	assertRedirect(t, env.do(httptest.NewRequest(http.MethodPost, "/shell/contact/close", nil)), "/")
	assert.Equal(t, shell.State{Page: shell.PageDemo}, env.handler.Session.Shell.State())

	assertRedirect(t, env.do(httptest.NewRequest(http.MethodPost, "/shell/landing", nil)), "/")
	assert.Equal(t, shell.PageLanding, env.handler.Session.Shell.State().Page)
}

func TestDemoForms(t *testing.T) {
	env := newTestEnv(t, false)
	env.handler.Session.Shell.ShowDemo()

	w := env.do(formRequest("/demo/job", url.Values{
		"job_title":        {"Product Manager"},
		"experience_level": {"Senior"},
		"job_requirements": {"Roadmaps"},
	}))
	assertRedirect(t, w, "/")
	assert.Equal(t, models.JobContext{Title: "Product Manager", ExperienceLevel: "Senior", Requirements: "Roadmaps"},
		env.handler.Session.JobContext())

	w = env.do(multipartRequest(t, "/demo/resume", "cv.txt", "text/plain", "Jane Doe"))
	assertRedirect(t, w, "/")
	assert.Contains(t, env.page(t), "✓ cv.txt (8 characters)")

	w = env.do(formRequest("/demo/chat", url.Values{"message": {"How do I stand out?"}}))
	assertRedirect(t, w, "/")
	body := env.page(t)
	assert.Contains(t, body, "How do I stand out?")
	assert.Contains(t, body, "Great question!")

	w = env.do(formRequest("/demo/resume/reset", nil))
	assertRedirect(t, w, "/")
	assert.Contains(t, env.page(t), "No file uploaded")
}

func TestDemoUploadErrorIsShownInline(t *testing.T) {
	env := newTestEnv(t, false)
	env.handler.Session.Shell.ShowDemo()

	env.do(multipartRequest(t, "/demo/resume", "cv.docx", "application/msword", "doc"))
	body := env.page(t)
	assert.Contains(t, body, "✗ unsupported file type: application/msword")
	assert.Contains(t, body, `action="/demo/resume/reset"`)

	w := env.do(httptest.NewRequest(http.MethodPost, "/demo/resume", nil))
	assertRedirect(t, w, "/?notice=no_file")
}

func TestDemoChatErrorIsShownInline(t *testing.T) {
	env := newTestEnv(t, false)
	env.handler.Session.Shell.ShowDemo()
	env.client.err = apperr.Network("chat request failed", nil)

	env.do(formRequest("/demo/chat", url.Values{"message": {"hello"}}))
	assert.Contains(t, env.page(t), "Network error. Please check your connection and try again.")
}

func TestContactForm(t *testing.T) {
	t.Run("Without sender", func(t *testing.T) {
		env := newTestEnv(t, false)
		w := env.do(formRequest("/contact", url.Values{"name": {"Jane"}, "email": {"jane@example.com"}, "message": {"hi"}}))
		assertRedirect(t, w, "/?notice=contact_off")
	})

	t.Run("Sent closes the overlay", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.handler.Session.Shell.OpenContact()

		w := env.do(formRequest("/contact", url.Values{"name": {"Jane"}, "email": {"jane@example.com"}, "message": {"hi"}}))
		assertRedirect(t, w, "/?notice=contact_sent")
		assert.False(t, env.handler.Session.Shell.State().ContactOpen)
		require.Len(t, env.contact.sent, 1)

		w = env.do(httptest.NewRequest(http.MethodGet, "/?notice=contact_sent", nil))
		assert.Contains(t, w.Body.String(), "Message sent")
	})

	t.Run("Missing fields", func(t *testing.T) {
		env := newTestEnv(t, true)
		w := env.do(formRequest("/contact", url.Values{"name": {"Jane"}}))
		assertRedirect(t, w, "/?notice=contact_invalid")
		assert.Empty(t, env.contact.sent)
	})
}
