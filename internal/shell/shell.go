package shell

import "sync"

type Page string

const (
	PageLanding Page = "landing"
	PageDemo    Page = "demo"
)

// State is what the browser needs to render the shell.
type State struct {
	Page        Page `json:"page"`
	ContactOpen bool `json:"contact_open"`
}

// Shell switches between the landing page and the demo. The contact overlay
// is independent of the page.
type Shell struct {
	mu    sync.RWMutex
	state State
}

func New() *Shell {
	return &Shell{state: State{Page: PageLanding}}
}

func (s *Shell) ShowDemo() {
	s.setPage(PageDemo)
}

func (s *Shell) ShowLanding() {
	s.setPage(PageLanding)
}

func (s *Shell) OpenContact() {
	s.setContact(true)
}

func (s *Shell) CloseContact() {
	s.setContact(false)
}

func (s *Shell) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Shell) setPage(p Page) {
	s.mu.Lock()
	s.state.Page = p
	s.mu.Unlock()
}

func (s *Shell) setContact(open bool) {
	s.mu.Lock()
	s.state.ContactOpen = open
	s.mu.Unlock()
}
