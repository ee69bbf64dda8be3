// Package sender implements the sending side of the QR transfer: entry
// selection, optional re-authentication, the one-shot backend preparation
// call, and the animated cycling of chunk QR frames.
package sender

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	appevents "github.com/qrvault/qrvault/internal/app_events"
	senderevents "github.com/qrvault/qrvault/internal/app_events/sender"
	"github.com/qrvault/qrvault/pkg/backend"
	"github.com/qrvault/qrvault/pkg/concurrency"
	"github.com/qrvault/qrvault/pkg/qrcodec"
	"github.com/qrvault/qrvault/pkg/transferfile"
	"github.com/qrvault/qrvault/pkg/vault"
)

// State identifies where the sender flow currently is.
type State int

const (
	StateSelect State = iota
	StateAuth
	StatePreparing
	StateTransfer
	StateError
)

func (s State) String() string {
	switch s {
	case StateSelect:
		return "select"
	case StateAuth:
		return "auth"
	case StatePreparing:
		return "preparing"
	case StateTransfer:
		return "transfer"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultFrameInterval is the cadence at which the displayed chunk index
// cycles during transfer.
const DefaultFrameInterval = 500 * time.Millisecond

// CaptureDeterrent is the best-effort OS toggle that discourages screen
// recording while QR frames are showing.
type CaptureDeterrent interface {
	Enable() error
	Disable() error
}

// NopDeterrent is used on platforms without a capture-deterrence facility.
type NopDeterrent struct{}

func (NopDeterrent) Enable() error  { return nil }
func (NopDeterrent) Disable() error { return nil }

// Session holds the prepared transfer for the lifetime of one sender flow.
type Session struct {
	ID         string
	Chunks     []string
	Phrase     string
	EntryCount int
	Sensitive  bool
}

type prepResult struct {
	gen      uint64
	prepared *backend.Prepared
	err      error
}

// App is the sender flow controller. All state below the channels is owned
// by the Run goroutine; the TUI talks to it exclusively through events.
type App struct {
	store         *vault.Store
	backend       backend.Backend
	codec         qrcodec.Codec
	deterrent     CaptureDeterrent
	guard         *concurrency.ConcurrencyGuard
	frameInterval time.Duration

	uiMessages chan tea.Msg
	appEvents  chan appevents.AppEvent

	state       State
	pendingIDs  []string
	session     *Session
	frameIndex  int
	gen         uint64
	prepResults chan prepResult
	ticker      *time.Ticker
	tickCh      <-chan time.Time
	deterred    bool
}

// NewApp creates a sender controller over its collaborators.
func NewApp(store *vault.Store, b backend.Backend, codec qrcodec.Codec, deterrent CaptureDeterrent) *App {
	if deterrent == nil {
		deterrent = NopDeterrent{}
	}
	return &App{
		store:         store,
		backend:       b,
		codec:         codec,
		deterrent:     deterrent,
		guard:         concurrency.NewConcurrencyGuard(),
		frameInterval: DefaultFrameInterval,
		uiMessages:    make(chan tea.Msg, 32),
		appEvents:     make(chan appevents.AppEvent),
		prepResults:   make(chan prepResult, 1),
	}
}

// UIMessages returns the channel the TUI listens on for updates.
func (a *App) UIMessages() <-chan tea.Msg {
	return a.uiMessages
}

// AppEvents returns a write-only channel for the TUI to send events.
func (a *App) AppEvents() chan<- appevents.AppEvent {
	return a.appEvents
}

// State returns the current flow state. Intended for tests and the TUI's
// initial render; live transitions arrive as UI messages.
func (a *App) State() State {
	return a.state
}

// Run drives the flow until ctx is cancelled. Closing the flow at any point
// stops the animation, disables capture deterrence if it was enabled, and
// discards the phrase and chunk list.
func (a *App) Run(ctx context.Context) error {
	defer a.teardown()

	a.sendUI(senderevents.EntryListMsg{Entries: a.store.List()})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-a.appEvents:
			a.handleEvent(ctx, event)
		case res := <-a.prepResults:
			a.handlePrepared(res)
		case <-a.tickCh:
			a.advanceFrame()
		}
	}
}

func (a *App) handleEvent(ctx context.Context, event appevents.AppEvent) {
	switch e := event.(type) {
	case senderevents.EntriesSelectedEvent:
		a.handleSelection(ctx, e.IDs)
	case senderevents.AuthSubmittedEvent:
		if a.state != StateAuth {
			slog.Warn("Ignoring auth secret outside the auth state", "state", a.state)
			backend.Zero(e.Secret)
			return
		}
		a.startPrepare(ctx, a.pendingIDs, e.Secret)
	case senderevents.ExportFileEvent:
		a.handleExport(e.Path)
	case senderevents.RetryEvent:
		if a.state != StateError {
			return
		}
		a.reset()
		a.sendUI(senderevents.EntryListMsg{Entries: a.store.List()})
	default:
		slog.Warn("Received unhandled app event", "event", event)
	}
}

func (a *App) handleSelection(ctx context.Context, ids []string) {
	if a.state != StateSelect {
		slog.Warn("Ignoring selection outside the select state", "state", a.state)
		return
	}
	if len(ids) == 0 {
		return
	}

	entries, err := a.store.Get(ids)
	if err != nil {
		a.fail("Selection is no longer valid", err)
		return
	}

	if vault.AnySensitive(entries) {
		a.pendingIDs = ids
		a.state = StateAuth
		a.sendUI(senderevents.AuthRequiredMsg{})
		return
	}
	a.startPrepare(ctx, ids, nil)
}

// startPrepare kicks off the one-shot backend call. The result is tagged
// with a generation counter so a response that lands after a retry or close
// is discarded instead of resurrecting a dead session.
func (a *App) startPrepare(ctx context.Context, ids []string, secret []byte) {
	a.state = StatePreparing
	a.sendUI(senderevents.PreparingMsg{})

	gen := a.gen + 1
	a.gen = gen

	go func() {
		var prepared *backend.Prepared
		err := a.guard.ExecuteWithContext(ctx, func(taskCtx context.Context) error {
			var prepErr error
			prepared, prepErr = a.backend.Prepare(taskCtx, ids, secret)
			return prepErr
		})
		backend.Zero(secret)

		select {
		case a.prepResults <- prepResult{gen: gen, prepared: prepared, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (a *App) handlePrepared(res prepResult) {
	if res.gen != a.gen {
		slog.Debug("Discarding stale preparation result", "gen", res.gen)
		return
	}
	if res.err != nil {
		a.fail("Failed to prepare transfer", res.err)
		return
	}

	a.pendingIDs = nil
	a.session = &Session{
		ID:         uuid.New().String(),
		Chunks:     res.prepared.Chunks,
		Phrase:     res.prepared.Phrase,
		EntryCount: res.prepared.EntryCount,
		Sensitive:  res.prepared.Sensitive,
	}
	a.state = StateTransfer

	if err := a.deterrent.Enable(); err != nil {
		slog.Warn("Capture deterrence unavailable", "error", err)
	} else {
		a.deterred = true
	}

	a.sendUI(senderevents.TransferReadyMsg{
		Phrase:     a.session.Phrase,
		ChunkCount: len(a.session.Chunks),
		EntryCount: a.session.EntryCount,
	})

	a.frameIndex = 0
	a.emitFrame()
	// A single-chunk transfer displays statically.
	if a.session != nil && len(a.session.Chunks) > 1 {
		a.ticker = time.NewTicker(a.frameInterval)
		a.tickCh = a.ticker.C
	}
}

func (a *App) advanceFrame() {
	if a.state != StateTransfer || a.session == nil {
		return
	}
	a.frameIndex = (a.frameIndex + 1) % len(a.session.Chunks)
	a.emitFrame()
}

func (a *App) emitFrame() {
	img, err := a.codec.Render(a.session.Chunks[a.frameIndex])
	if err != nil {
		a.fail("Failed to render QR frame", err)
		return
	}
	a.sendUI(senderevents.FrameMsg{
		Image: img,
		Index: a.frameIndex,
		Total: len(a.session.Chunks),
	})
}

func (a *App) handleExport(path string) {
	if a.state != StateTransfer || a.session == nil {
		slog.Warn("Ignoring export outside the transfer state", "state", a.state)
		return
	}
	size, err := transferfile.Save(path, a.session.Chunks)
	if err != nil {
		// Export failure does not end the transfer; the QR animation is
		// still a working channel.
		slog.Error("Failed to write transfer file", "path", path, "error", err)
		a.sendUI(senderevents.ExportFailedMsg{Err: err})
		return
	}
	a.sendUI(senderevents.ExportDoneMsg{Path: path, Size: size})
}

// fail logs the error, surfaces it to the UI, and moves the flow to the
// error state with all transfer state cleared.
func (a *App) fail(baseMessage string, err error) {
	slog.Error(baseMessage, "error", err)
	a.reset()
	a.state = StateError
	a.sendUI(appevents.AppErrorMsg{Err: fmt.Errorf("%s: %w", baseMessage, err)})
}

// reset clears everything the session owned and returns to select.
func (a *App) reset() {
	a.stopTicker()
	a.disableDeterrent()
	a.session = nil
	a.pendingIDs = nil
	a.frameIndex = 0
	a.gen++ // orphan any in-flight preparation
	a.state = StateSelect
}

func (a *App) teardown() {
	a.stopTicker()
	a.disableDeterrent()
	a.session = nil
	a.pendingIDs = nil
}

func (a *App) stopTicker() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
		a.tickCh = nil
	}
}

func (a *App) disableDeterrent() {
	if !a.deterred {
		return
	}
	if err := a.deterrent.Disable(); err != nil {
		slog.Warn("Failed to disable capture deterrence", "error", err)
	}
	a.deterred = false
}

// sendUI forwards a message to the TUI without ever blocking the event
// loop. A full channel means the UI is gone or stalled; dropping a frame
// there is harmless.
func (a *App) sendUI(msg tea.Msg) {
	select {
	case a.uiMessages <- msg:
	default:
		slog.Debug("Dropping UI message", "msg", fmt.Sprintf("%T", msg))
	}
}
