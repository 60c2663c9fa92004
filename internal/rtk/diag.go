package rtk

import "fmt"

// Level classifies a diagnostic event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Event is one typed diagnostic record emitted by a core component. The
// core never logs on its own; the application layer decides what to do
// with these (cmd binaries feed them to the log package).
type Event struct {
	Level     Level
	Component string
	Message   string
}

// Reporter receives diagnostic events. A nil Reporter discards them.
type Reporter func(Event)

func (r Reporter) emit(lv Level, component, format string, args ...interface{}) {
	if r == nil {
		return
	}
	r(Event{Level: lv, Component: component, Message: fmt.Sprintf(format, args...)})
}
