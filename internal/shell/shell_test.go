package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartsOnLanding(t *testing.T) {
	assert.Equal(t, State{Page: PageLanding}, New().State())
}

func TestContactToggleKeepsPage(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Shell)
		want  Page
	}{
		{"Landing", func(s *Shell) {}, PageLanding},
		{"Demo", func(s *Shell) { s.ShowDemo() }, PageDemo},
		{"Back to landing", func(s *Shell) { s.ShowDemo(); s.ShowLanding() }, PageLanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.setup(s)
			before := s.State()

			s.OpenContact()
			assert.Equal(t, State{Page: tt.want, ContactOpen: true}, s.State())

			s.CloseContact()
			assert.Equal(t, before, s.State())
		})
	}
}

func TestPageSwitchKeepsOverlay(t *testing.T) {
	s := New()
	s.OpenContact()
	s.ShowDemo()
	assert.Equal(t, State{Page: PageDemo, ContactOpen: true}, s.State())
}
