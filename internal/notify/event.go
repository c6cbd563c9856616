package notify

type EventType string

const (
	EventToast    EventType = "toast"
	EventState    EventType = "state"
	EventSnapshot EventType = "snapshot"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Event is one message pushed to connected browsers.
type Event struct {
	Type        EventType `json:"type"`
	Level       Level     `json:"level,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Op          string    `json:"op,omitempty"`
	State       string    `json:"state,omitempty"`
	Data        any       `json:"data,omitempty"`
}

// Notifier receives toasts and state changes. Implementations must not block.
type Notifier interface {
	Notify(Event)
}

func Toast(level Level, title, description string) Event {
	return Event{Type: EventToast, Level: level, Title: title, Description: description}
}

func StateChange(op, state string) Event {
	return Event{Type: EventState, Op: op, State: state}
}

func Snapshot(data any) Event {
	return Event{Type: EventSnapshot, Data: data}
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(Event) {}
