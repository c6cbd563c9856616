package opstate

import (
	"sync"

	"go-resume-coach/internal/apperr"
)

type State string

const (
	StateIdle      State = "IDLE"
	StatePending   State = "PENDING"
	StateSucceeded State = "SUCCEEDED"
	StateFailed    State = "FAILED"
)

// Machine tracks one logical operation (an upload, a chat send).
// Only one run may be pending at a time: Idle -> Pending -> {Succeeded, Failed}.
type Machine struct {
	mu    sync.Mutex
	name  string
	state State
	err   error
}

func New(name string) *Machine {
	return &Machine{name: name, state: StateIdle}
}

// Begin moves the machine to Pending, or fails with a Busy error if a run is
// already pending.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StatePending {
		return apperr.Busy(m.name)
	}
	m.state = StatePending
	m.err = nil
	return nil
}

func (m *Machine) Succeed() {
	m.finish(StateSucceeded, nil)
}

func (m *Machine) Fail(err error) {
	m.finish(StateFailed, err)
}

func (m *Machine) finish(s State, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	//finishing a run that never began is a programming error, keep the state
	if m.state != StatePending {
		return
	}
	m.state = s
	m.err = err
}

// IfIdle runs fn while holding the machine lock unless a run is pending, so no
// Begin can slip in between the check and fn.
func (m *Machine) IfIdle(fn func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StatePending {
		return apperr.Busy(m.name)
	}
	fn()
	return nil
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err is the error of the last failed run.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Machine) Pending() bool {
	return m.State() == StatePending
}
