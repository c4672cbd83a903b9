package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/askbox/internal/models"
)

// Session events delivered to the program
type (
	messageAppendedMsg struct {
		message models.Message
	}
	inputClearedMsg struct{}
	busyChangedMsg  struct {
		busy bool
	}
)

// ProgramObserver forwards session events into a running tea.Program
type ProgramObserver struct {
	send func(tea.Msg)
}

// NewObserver returns a chat.Observer that delivers events through send,
// normally (*tea.Program).Send
func NewObserver(send func(tea.Msg)) *ProgramObserver {
	return &ProgramObserver{send: send}
}

func (o *ProgramObserver) MessageAppended(msg models.Message) {
	o.send(messageAppendedMsg{message: msg})
}

func (o *ProgramObserver) InputCleared() {
	o.send(inputClearedMsg{})
}

func (o *ProgramObserver) BusyChanged(busy bool) {
	o.send(busyChangedMsg{busy: busy})
}
