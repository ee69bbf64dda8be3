package receiver

import (
	appevents "github.com/qrvault/qrvault/internal/app_events"
)

// --- App Events (from TUI to controller) ---

// StartScanEvent is sent when the operator has entered the verification
// phrase and wants to scan QR frames.
type StartScanEvent struct {
	appevents.Event
	Phrase string
}

// LoadFileEvent is sent when the operator has entered the verification
// phrase and wants to import a previously saved transfer file instead of
// scanning.
type LoadFileEvent struct {
	appevents.Event
	Phrase string
	Path   string
}

// DoneScanningEvent is the operator manually ending the scan before the
// controller detected completion on its own.
type DoneScanningEvent struct {
	appevents.Event
}

// RetryEvent returns the flow from an error or camera-denied screen to the
// phrase prompt.
type RetryEvent struct {
	appevents.Event
}

var (
	_ appevents.AppEvent = (*StartScanEvent)(nil)
	_ appevents.AppEvent = (*LoadFileEvent)(nil)
	_ appevents.AppEvent = (*DoneScanningEvent)(nil)
	_ appevents.AppEvent = (*RetryEvent)(nil)
)

// --- UI Messages (from controller to TUI) ---

// ScanStartedMsg confirms the camera is live and sampling has begun.
type ScanStartedMsg struct{}

// CameraDeniedMsg reports that the camera could not be acquired.
type CameraDeniedMsg struct {
	Err error
}

// ScanProgressMsg reports accumulator growth. Total is 0 until the first
// valid chunk has been observed.
type ScanProgressMsg struct {
	Received int
	Total    int
}

// ImportingMsg announces that the backend import call is in flight.
type ImportingMsg struct{}

// ImportCompleteMsg reports a finished import.
type ImportCompleteMsg struct {
	Count int
}

// PromptCodeMsg tells the UI the flow is back at the phrase prompt.
type PromptCodeMsg struct{}
