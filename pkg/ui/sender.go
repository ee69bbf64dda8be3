package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/qrvault/qrvault/internal/app_events"
	senderEvent "github.com/qrvault/qrvault/internal/app_events/sender"
	"github.com/qrvault/qrvault/internal/style"
	"github.com/qrvault/qrvault/internal/util"
	"github.com/qrvault/qrvault/pkg/entryPicker"
)

// senderState defines the different states of the sender UI.
type senderState int

const (
	selectingEntries senderState = iota
	enteringSecret
	preparingTransfer
	showingFrames
	sendFailed
)

type senderModel struct {
	state       senderState
	spinner     spinner.Model
	picker      entryPicker.Model
	secretInput textinput.Model

	phrase     string
	frame      string
	frameIndex int
	frameTotal int
	entryCount int

	exportPath string
	exportNote string
	errText    string
}

func initSenderModel(exportPath string) senderModel {
	ti := textinput.New()
	ti.Placeholder = "master secret"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 128
	ti.Width = 40

	return senderModel{
		state:       selectingEntries,
		spinner:     style.NewSpinner(),
		picker:      entryPicker.InitialModel(),
		secretInput: ti,
		exportPath:  exportPath,
	}
}

func (m *model) initSender() tea.Cmd {
	return tea.Batch(m.sender.spinner.Tick, m.listenForAppMessages())
}

func (m *model) updateSender(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, processed := m.handleSenderAppEvent(msg); processed {
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.sender.state {
	case selectingEntries:
		cmd = m.updateSelectingEntries(msg)
	case enteringSecret:
		cmd = m.updateEnteringSecret(msg)
	case showingFrames:
		cmd = m.updateShowingFrames(msg)
	case sendFailed:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			m.appController.AppEvents() <- senderEvent.RetryEvent{}
			return m, nil
		}
	}

	var spinCmd tea.Cmd
	m.sender.spinner, spinCmd = m.sender.spinner.Update(msg)

	return m, tea.Batch(cmd, spinCmd)
}

func (m *model) handleSenderAppEvent(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case senderEvent.EntryListMsg:
		m.sender.state = selectingEntries
		m.sender.exportNote = ""
		m.sender.errText = ""
		m.sender.picker.SetEntries(msg.Entries)
		return m.listenForAppMessages(), true
	case senderEvent.AuthRequiredMsg:
		m.sender.state = enteringSecret
		m.sender.secretInput.Reset()
		m.sender.secretInput.Focus()
		return tea.Batch(textinput.Blink, m.listenForAppMessages()), true
	case senderEvent.PreparingMsg:
		m.sender.state = preparingTransfer
		return tea.Batch(m.sender.spinner.Tick, m.listenForAppMessages()), true
	case senderEvent.TransferReadyMsg:
		m.sender.state = showingFrames
		m.sender.errText = ""
		m.sender.phrase = msg.Phrase
		m.sender.frameTotal = msg.ChunkCount
		m.sender.entryCount = msg.EntryCount
		return m.listenForAppMessages(), true
	case senderEvent.FrameMsg:
		m.sender.frame = renderQR(msg.Image)
		m.sender.frameIndex = msg.Index
		m.sender.frameTotal = msg.Total
		return m.listenForAppMessages(), true
	case senderEvent.ExportDoneMsg:
		m.sender.errText = ""
		m.sender.exportNote = fmt.Sprintf("Saved %s (%s)", msg.Path, util.FormatSize(msg.Size))
		return m.listenForAppMessages(), true
	case senderEvent.ExportFailedMsg:
		// The transfer keeps running; surface the failure on the frame
		// screen instead of abandoning the animation.
		m.sender.errText = msg.Err.Error()
		return m.listenForAppMessages(), true
	case appevents.AppErrorMsg:
		m.sender.state = sendFailed
		m.sender.errText = msg.Err.Error()
		return m.listenForAppMessages(), true
	}
	return nil, false
}

func (m *model) updateSelectingEntries(msg tea.Msg) tea.Cmd {
	if selected, ok := msg.(entryPicker.SelectedEntriesMsg); ok {
		m.appController.AppEvents() <- senderEvent.EntriesSelectedEvent{IDs: selected.IDs}
		return nil
	}
	newPicker, cmd := m.sender.picker.Update(msg)
	m.sender.picker = newPicker.(entryPicker.Model)
	return cmd
}

func (m *model) updateEnteringSecret(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		secret := []byte(m.sender.secretInput.Value())
		m.sender.secretInput.Reset()
		m.appController.AppEvents() <- senderEvent.AuthSubmittedEvent{Secret: secret}
		return nil
	}
	var cmd tea.Cmd
	m.sender.secretInput, cmd = m.sender.secretInput.Update(msg)
	return cmd
}

func (m *model) updateShowingFrames(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "e" && m.sender.exportPath != "" {
			m.appController.AppEvents() <- senderEvent.ExportFileEvent{Path: m.sender.exportPath}
		}
	}
	return nil
}

func (m *model) senderView() string {
	switch m.sender.state {
	case selectingEntries:
		return style.TitleStyle.Render("Send vault entries") + "\n\n" + m.sender.picker.View()
	case enteringSecret:
		s := "The selection includes sensitive entries. Re-enter the master secret to continue.\n\n"
		s += m.sender.secretInput.View() + "\n"
		s += style.HelpStyle.Render("Enter to confirm")
		return s
	case preparingTransfer:
		return fmt.Sprintf("\n%s Encrypting and chunking...", m.sender.spinner.View())
	case showingFrames:
		s := fmt.Sprintf("Transferring %d entr%s. Read this phrase aloud to the receiving device's operator:\n",
			m.sender.entryCount, pluralSuffix(m.sender.entryCount))
		s += style.PhraseStyle.Render(m.sender.phrase) + "\n\n"
		s += m.sender.frame
		s += fmt.Sprintf("Frame %d/%d\n", m.sender.frameIndex+1, m.sender.frameTotal)
		if m.sender.exportPath != "" {
			s += style.HelpStyle.Render(fmt.Sprintf("Press 'e' to also save the transfer to %s", m.sender.exportPath)) + "\n"
		}
		if m.sender.exportNote != "" {
			s += style.SuccessStyle.Render(m.sender.exportNote) + "\n"
		}
		if m.sender.errText != "" {
			s += style.ErrorStyle.Render(m.sender.errText) + "\n"
		}
		return s
	case sendFailed:
		return fmt.Sprintf("\n%s\n\nPress Enter to try again.", style.ErrorStyle.Render(m.sender.errText))
	default:
		return "Internal error: unknown sender state"
	}
}

func pluralSuffix(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
