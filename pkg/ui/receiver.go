package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/qrvault/qrvault/internal/app_events"
	receiverEvent "github.com/qrvault/qrvault/internal/app_events/receiver"
	"github.com/qrvault/qrvault/internal/style"
)

// receiverState defines the different states of the receiver UI.
type receiverState int

const (
	enteringPhrase receiverState = iota
	scanningFrames
	importingEntries
	importComplete
	cameraDenied
	importFailed
)

type KeyMap struct {
	Scan     key.Binding
	LoadFile key.Binding
	Done     key.Binding
}

// DefaultKeyMap provides sensible default keybindings.
var DefaultKeyMap = KeyMap{
	Scan:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start scanning")),
	LoadFile: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "import from file")),
	Done:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done scanning")),
}

type receiverModel struct {
	state       receiverState
	spinner     spinner.Model
	phraseInput textinput.Model
	filePath    string

	received      int
	total         int
	importedCount int
	errText       string
}

func initReceiverModel(filePath string) receiverModel {
	ti := textinput.New()
	ti.Placeholder = "four words separated by spaces"
	ti.CharLimit = 128
	ti.Width = 48
	ti.Focus()

	return receiverModel{
		state:       enteringPhrase,
		spinner:     style.NewSpinner(),
		phraseInput: ti,
		filePath:    filePath,
	}
}

func (m *model) initReceiver() tea.Cmd {
	return tea.Batch(
		m.receiver.spinner.Tick,
		textinput.Blink,
		m.listenForAppMessages(),
	)
}

func (m *model) updateReceiver(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, processed := m.handleReceiverAppEvent(msg); processed {
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.receiver.state {
	case enteringPhrase:
		cmd = m.updateEnteringPhrase(msg)
	case scanningFrames:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, DefaultKeyMap.Done) {
			m.appController.AppEvents() <- receiverEvent.DoneScanningEvent{}
			return m, nil
		}
	case importComplete:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			m.cancel()
			return m, tea.Quit
		}
	case cameraDenied, importFailed:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			m.appController.AppEvents() <- receiverEvent.RetryEvent{}
			return m, nil
		}
	}

	var spinCmd tea.Cmd
	if m.receiver.state == scanningFrames || m.receiver.state == importingEntries {
		m.receiver.spinner, spinCmd = m.receiver.spinner.Update(msg)
	}

	return m, tea.Batch(cmd, spinCmd)
}

func (m *model) handleReceiverAppEvent(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case receiverEvent.PromptCodeMsg:
		m.receiver.state = enteringPhrase
		m.receiver.errText = ""
		m.receiver.received = 0
		m.receiver.total = 0
		m.receiver.phraseInput.Reset()
		m.receiver.phraseInput.Focus()
		return tea.Batch(textinput.Blink, m.listenForAppMessages()), true
	case receiverEvent.ScanStartedMsg:
		m.receiver.state = scanningFrames
		m.receiver.received = 0
		m.receiver.total = 0
		return tea.Batch(m.receiver.spinner.Tick, m.listenForAppMessages()), true
	case receiverEvent.CameraDeniedMsg:
		m.receiver.state = cameraDenied
		m.receiver.errText = msg.Err.Error()
		return m.listenForAppMessages(), true
	case receiverEvent.ScanProgressMsg:
		m.receiver.received = msg.Received
		m.receiver.total = msg.Total
		return m.listenForAppMessages(), true
	case receiverEvent.ImportingMsg:
		m.receiver.state = importingEntries
		return tea.Batch(m.receiver.spinner.Tick, m.listenForAppMessages()), true
	case receiverEvent.ImportCompleteMsg:
		m.receiver.state = importComplete
		m.receiver.importedCount = msg.Count
		return m.listenForAppMessages(), true
	case appevents.AppErrorMsg:
		m.receiver.errText = msg.Err.Error()
		// A rejected phrase or an unreadable transfer file leaves the
		// controller at the prompt; show those inline instead of switching
		// to the failure screen.
		if m.receiver.state != enteringPhrase {
			m.receiver.state = importFailed
		}
		return m.listenForAppMessages(), true
	}
	return nil, false
}

func (m *model) updateEnteringPhrase(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Scan):
			m.appController.AppEvents() <- receiverEvent.StartScanEvent{Phrase: m.receiver.phraseInput.Value()}
			return nil
		case key.Matches(keyMsg, DefaultKeyMap.LoadFile):
			if m.receiver.filePath != "" {
				m.appController.AppEvents() <- receiverEvent.LoadFileEvent{
					Phrase: m.receiver.phraseInput.Value(),
					Path:   m.receiver.filePath,
				}
			}
			return nil
		}
	}
	var cmd tea.Cmd
	m.receiver.phraseInput, cmd = m.receiver.phraseInput.Update(msg)
	return cmd
}

func (m model) receiverView() string {
	switch m.receiver.state {
	case enteringPhrase:
		s := style.TitleStyle.Render("Receive vault entries") + "\n\n"
		s += "Enter the verification phrase shown on the sending device:\n\n"
		s += m.receiver.phraseInput.View() + "\n"
		help := fmt.Sprintf("%s: %s", DefaultKeyMap.Scan.Help().Key, DefaultKeyMap.Scan.Help().Desc)
		if m.receiver.filePath != "" {
			help += fmt.Sprintf("  %s: %s", DefaultKeyMap.LoadFile.Help().Key, DefaultKeyMap.LoadFile.Help().Desc)
		}
		s += style.HelpStyle.Render(help)
		if m.receiver.errText != "" {
			s += "\n" + style.ErrorStyle.Render(m.receiver.errText)
		}
		return s
	case scanningFrames:
		progress := "waiting for the first frame"
		if m.receiver.total > 0 {
			progress = fmt.Sprintf("received %s of %d chunks",
				style.HighlightFontStyle.Render(fmt.Sprintf("%d", m.receiver.received)), m.receiver.total)
		}
		s := fmt.Sprintf("\n%s Scanning, %s...\n", m.receiver.spinner.View(), progress)
		s += style.HelpStyle.Render(fmt.Sprintf("%s: %s", DefaultKeyMap.Done.Help().Key, DefaultKeyMap.Done.Help().Desc))
		return s
	case importingEntries:
		return fmt.Sprintf("\n%s Decrypting and importing...", m.receiver.spinner.View())
	case importComplete:
		return fmt.Sprintf("\n%s\n\nPress Enter to exit.",
			style.SuccessStyle.Render(fmt.Sprintf("Imported %d entries.", m.receiver.importedCount)))
	case cameraDenied:
		return fmt.Sprintf("\nCamera unavailable: %s\n\nPress Enter to go back.", style.ErrorStyle.Render(m.receiver.errText))
	case importFailed:
		return fmt.Sprintf("\n%s\n\nPress Enter to try again.", style.ErrorStyle.Render(m.receiver.errText))
	default:
		return "Internal error: unknown receiver state"
	}
}
