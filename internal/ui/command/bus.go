package command

import (
	"fmt"

	"github.com/atomicstack/visa-lookup/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs the work of a request and returns the resulting message.
type Handler func() tea.Msg

// Request encapsulates one queued unit of work, such as a visa lookup.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Bus coordinates the execution of background requests.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
