package appevents

// AppEvent is a marker interface for events sent from the TUI to a flow
// controller. It uses an unexported method so that only types embedding
// Event can satisfy it, giving compile-time safety.
type AppEvent interface {
	isAppEvent()
}

// Event is embedded by concrete event types to satisfy AppEvent.
type Event struct{}

func (Event) isAppEvent() {}

// AppErrorMsg carries a controller failure to the TUI. The error text is
// the failure reason shown on the error screen.
type AppErrorMsg struct {
	Err error
}
