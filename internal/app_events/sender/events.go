package sender

import (
	"image"

	appevents "github.com/qrvault/qrvault/internal/app_events"
	"github.com/qrvault/qrvault/pkg/vault"
)

// --- App Events (from TUI to controller) ---

// EntriesSelectedEvent is sent when the operator confirms which entries to
// transfer.
type EntriesSelectedEvent struct {
	appevents.Event
	IDs []string
}

// AuthSubmittedEvent carries the re-entered master secret for a selection
// that includes sensitive entries.
type AuthSubmittedEvent struct {
	appevents.Event
	Secret []byte
}

// ExportFileEvent asks the controller to write the full chunk list to a
// transfer file. Available only while the transfer screen is showing.
type ExportFileEvent struct {
	appevents.Event
	Path string
}

// RetryEvent returns the flow from the error screen to entry selection.
type RetryEvent struct {
	appevents.Event
}

var (
	_ appevents.AppEvent = (*EntriesSelectedEvent)(nil)
	_ appevents.AppEvent = (*AuthSubmittedEvent)(nil)
	_ appevents.AppEvent = (*ExportFileEvent)(nil)
	_ appevents.AppEvent = (*RetryEvent)(nil)
)

// --- UI Messages (from controller to TUI) ---

// EntryListMsg delivers the selectable entries when the flow starts or is
// retried.
type EntryListMsg struct {
	Entries []vault.Entry
}

// AuthRequiredMsg tells the UI the selection includes a sensitive entry and
// the operator must re-authenticate before preparation.
type AuthRequiredMsg struct{}

// PreparingMsg announces that the backend preparation call is in flight.
type PreparingMsg struct{}

// TransferReadyMsg announces the prepared transfer.
type TransferReadyMsg struct {
	Phrase     string
	ChunkCount int
	EntryCount int
}

// FrameMsg delivers the QR image for the currently displayed chunk.
type FrameMsg struct {
	Image image.Image
	Index int
	Total int
}

// ExportDoneMsg reports a successful transfer-file write.
type ExportDoneMsg struct {
	Path string
	Size int64
}

// ExportFailedMsg reports a failed transfer-file write. The transfer itself
// keeps running; the QR animation is still a working channel.
type ExportFailedMsg struct {
	Err error
}
