// Package receiver implements the receiving side of the QR transfer: the
// verification-phrase prompt, camera sampling and chunk reassembly, the
// transfer-file import path, and the one-shot backend import call.
package receiver

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/qrvault/qrvault/internal/app_events"
	receiverevents "github.com/qrvault/qrvault/internal/app_events/receiver"
	"github.com/qrvault/qrvault/pkg/backend"
	"github.com/qrvault/qrvault/pkg/camera"
	"github.com/qrvault/qrvault/pkg/chunk"
	"github.com/qrvault/qrvault/pkg/concurrency"
	"github.com/qrvault/qrvault/pkg/phrase"
	"github.com/qrvault/qrvault/pkg/qrcodec"
	"github.com/qrvault/qrvault/pkg/transferfile"
)

// State identifies where the receiver flow currently is.
type State int

const (
	StateCode State = iota
	StateScanning
	StateImporting
	StateComplete
	StateCameraDenied
	StateError
)

func (s State) String() string {
	switch s {
	case StateCode:
		return "code"
	case StateScanning:
		return "scanning"
	case StateImporting:
		return "importing"
	case StateComplete:
		return "complete"
	case StateCameraDenied:
		return "camera-denied"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultSampleInterval bounds decode cost: frames are sampled at ~10 Hz
// regardless of the camera's frame rate.
const DefaultSampleInterval = 100 * time.Millisecond

// ErrPhraseInvalid rejects a phrase that is not exactly the fixed word
// count before scanning or file loading may begin.
var ErrPhraseInvalid = fmt.Errorf("verification code must be exactly %d words", phrase.WordCount)

type importResult struct {
	gen   uint64
	count int
	err   error
}

// App is the receiver flow controller. All state below the channels is
// owned by the Run goroutine.
type App struct {
	backend        backend.Backend
	codec          qrcodec.Codec
	camera         camera.Camera
	guard          *concurrency.ConcurrencyGuard
	sampleInterval time.Duration

	uiMessages chan tea.Msg
	appEvents  chan appevents.AppEvent

	state         State
	phrase        string
	acc           *chunk.Accumulator
	stream        camera.Stream
	ticker        *time.Ticker
	tickCh        <-chan time.Time
	gen           uint64
	importResults chan importResult
}

// NewApp creates a receiver controller over its collaborators.
func NewApp(b backend.Backend, codec qrcodec.Codec, cam camera.Camera) *App {
	return &App{
		backend:        b,
		codec:          codec,
		camera:         cam,
		guard:          concurrency.NewConcurrencyGuard(),
		sampleInterval: DefaultSampleInterval,
		uiMessages:     make(chan tea.Msg, 32),
		appEvents:      make(chan appevents.AppEvent),
		acc:            chunk.NewAccumulator(),
		importResults:  make(chan importResult, 1),
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

// Run drives the flow until ctx is cancelled. Closing the flow from any
// state stops the camera stream, clears the chunk accumulator, and forgets
// the verification phrase.
func (a *App) Run(ctx context.Context) error {
	defer a.teardown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-a.appEvents:
			a.handleEvent(ctx, event)
		case res := <-a.importResults:
			a.handleImported(res)
		case <-a.tickCh:
			a.sampleFrame(ctx)
		}
	}
}

func (a *App) handleEvent(ctx context.Context, event appevents.AppEvent) {
	switch e := event.(type) {
	case receiverevents.StartScanEvent:
		a.handleStartScan(ctx, e.Phrase)
	case receiverevents.LoadFileEvent:
		a.handleLoadFile(ctx, e.Phrase, e.Path)
	case receiverevents.DoneScanningEvent:
		a.handleDoneScanning(ctx)
	case receiverevents.RetryEvent:
		a.handleRetry()
	default:
		slog.Warn("Received unhandled app event", "event", event)
	}
}

func (a *App) handleStartScan(ctx context.Context, code string) {
	if a.state != StateCode {
		slog.Warn("Ignoring scan request outside the code state", "state", a.state)
		return
	}
	if !phrase.Valid(code) {
		a.sendUI(appevents.AppErrorMsg{Err: ErrPhraseInvalid})
		return
	}
	a.phrase = phrase.Normalize(code)

	stream, err := a.camera.Acquire(ctx)
	if err != nil {
		slog.Error("Camera acquisition failed", "error", err)
		a.state = StateCameraDenied
		a.sendUI(receiverevents.CameraDeniedMsg{Err: err})
		return
	}

	a.stream = stream
	a.state = StateScanning
	a.ticker = time.NewTicker(a.sampleInterval)
	a.tickCh = a.ticker.C
	a.sendUI(receiverevents.ScanStartedMsg{})
}

// sampleFrame takes at most one pending frame per tick. A tick with no
// frame ready is skipped; decode noise and malformed chunks are silently
// ignored.
func (a *App) sampleFrame(ctx context.Context) {
	if a.state != StateScanning || a.stream == nil {
		return
	}

	var frame image.Image
	select {
	case f, ok := <-a.stream.Frames():
		if !ok {
			return
		}
		frame = f
	default:
		// No frame ready; skip this tick rather than wait.
		return
	}

	decoded, ok := a.codec.Decode(frame)
	if !ok {
		return
	}

	h, _, ok := chunk.Decode(decoded)
	if !ok || h.Total == 0 || h.Index >= h.Total {
		// Scanner noise, not an error.
		return
	}
	if known := a.acc.Total(); known > 0 && h.Index >= known {
		// A chunk from some other transfer; the session total wins.
		return
	}

	if a.acc.Insert(h.Index, h.Total, decoded) {
		a.sendUI(receiverevents.ScanProgressMsg{Received: a.acc.Len(), Total: a.acc.Total()})
	}

	if a.acc.Complete() {
		a.stopScanning()
		a.beginImport(ctx, a.acc.Ordered())
	}
}

func (a *App) handleLoadFile(ctx context.Context, code, path string) {
	if a.state != StateCode {
		slog.Warn("Ignoring file load outside the code state", "state", a.state)
		return
	}
	if !phrase.Valid(code) {
		a.sendUI(appevents.AppErrorMsg{Err: ErrPhraseInvalid})
		return
	}
	a.phrase = phrase.Normalize(code)

	chunks, err := transferfile.Load(path)
	if err != nil {
		// Stay at the code prompt so the operator can correct the path or
		// fall back to scanning; nothing has been consumed yet.
		slog.Error("Failed to load transfer file", "path", path, "error", err)
		a.sendUI(appevents.AppErrorMsg{Err: fmt.Errorf("failed to load transfer file: %w", err)})
		return
	}
	a.beginImport(ctx, chunks)
}

func (a *App) handleDoneScanning(ctx context.Context) {
	if a.state != StateScanning {
		return
	}
	if a.acc.Complete() {
		a.stopScanning()
		a.beginImport(ctx, a.acc.Ordered())
		return
	}

	received, total := a.acc.Len(), a.acc.Total()
	a.stopScanning()
	a.state = StateError
	var err error
	if total == 0 {
		err = errors.New("transfer incomplete: no chunks received yet")
	} else {
		err = fmt.Errorf("transfer incomplete: received %d of %d chunks", received, total)
	}
	a.sendUI(appevents.AppErrorMsg{Err: err})
}

func (a *App) handleRetry() {
	if a.state != StateError && a.state != StateCameraDenied {
		return
	}
	a.reset()
	a.sendUI(receiverevents.PromptCodeMsg{})
}

// beginImport hands the ordered chunk list and the phrase to the backend.
// The result carries a generation counter so an answer arriving after the
// flow was reset or closed is discarded.
func (a *App) beginImport(ctx context.Context, chunks []string) {
	a.state = StateImporting
	a.sendUI(receiverevents.ImportingMsg{})

	gen := a.gen + 1
	a.gen = gen
	code := a.phrase

	go func() {
		var count int
		err := a.guard.ExecuteWithContext(ctx, func(taskCtx context.Context) error {
			var impErr error
			count, impErr = a.backend.Import(taskCtx, chunks, code)
			return impErr
		})

		select {
		case a.importResults <- importResult{gen: gen, count: count, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (a *App) handleImported(res importResult) {
	if res.gen != a.gen {
		slog.Debug("Discarding stale import result", "gen", res.gen)
		return
	}
	if res.err != nil {
		a.fail("Import failed", res.err)
		return
	}
	a.state = StateComplete
	a.sendUI(receiverevents.ImportCompleteMsg{Count: res.count})
}

// fail logs the error, surfaces it, and moves to the error state. Scanning
// resources are released first.
func (a *App) fail(baseMessage string, err error) {
	slog.Error(baseMessage, "error", err)
	a.stopScanning()
	a.state = StateError
	a.sendUI(appevents.AppErrorMsg{Err: fmt.Errorf("%s: %w", baseMessage, err)})
}

// reset returns the flow to the phrase prompt with all session state gone.
func (a *App) reset() {
	a.stopScanning()
	a.acc.Reset()
	a.phrase = ""
	a.gen++ // orphan any in-flight import
	a.state = StateCode
}

func (a *App) teardown() {
	a.stopScanning()
	a.acc.Reset()
	a.phrase = ""
}

func (a *App) stopScanning() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
		a.tickCh = nil
	}
	if a.stream != nil {
		a.stream.Stop()
		a.stream = nil
	}
}

// sendUI forwards a message to the TUI without blocking the event loop.
func (a *App) sendUI(msg tea.Msg) {
	select {
	case a.uiMessages <- msg:
	default:
		slog.Debug("Dropping UI message", "msg", fmt.Sprintf("%T", msg))
	}
}
