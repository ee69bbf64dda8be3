// Package ui renders the terminal front end for both transfer roles. The
// bubbletea model is a thin view over an AppController; all domain decisions
// live in the controller goroutine.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/qrvault/qrvault/internal/app_events"
)

// AppController is the contract between the TUI and a flow controller.
type AppController interface {
	UIMessages() <-chan tea.Msg
	AppEvents() chan<- appevents.AppEvent
	Run(ctx context.Context) error
}

type mode int

const (
	None mode = iota
	Sender
	Receiver
)

// Options carries the CLI flags the views need.
type Options struct {
	// ExportPath, when set, enables the sender's transfer-file export key.
	ExportPath string
	// FilePath, when set, enables the receiver's load-from-file key.
	FilePath string
}

type model struct {
	mode          mode
	appController AppController
	ctx           context.Context
	cancel        context.CancelFunc
	sender        senderModel
	receiver      receiverModel
}

func InitialModel(m mode, appController AppController, opts Options) model {
	var sender senderModel
	var receiver receiverModel

	switch m {
	case Sender:
		sender = initSenderModel(opts.ExportPath)
	case Receiver:
		receiver = initReceiverModel(opts.FilePath)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return model{
		mode:          m,
		appController: appController,
		ctx:           ctx,
		cancel:        cancel,
		sender:        sender,
		receiver:      receiver,
	}
}

func (m model) Init() tea.Cmd {
	go m.appController.Run(m.ctx)

	switch m.mode {
	case Sender:
		return m.initSender()
	case Receiver:
		return m.initReceiver()
	default:
		return nil
	}
}

func (m model) View() string {
	var s string
	switch m.mode {
	case Sender:
		s += m.senderView()
	case Receiver:
		s += m.receiverView()
	default:
		return ""
	}
	s += "\nPress ctrl + c to quit"
	return s
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}

	switch m.mode {
	case Sender:
		return m.updateSender(msg)
	case Receiver:
		return m.updateReceiver(msg)
	}

	return m, nil
}

// listenForAppMessages is a command that listens for messages from the app controller.
func (m *model) listenForAppMessages() tea.Cmd {
	return func() tea.Msg {
		return <-m.appController.UIMessages()
	}
}
