package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/logging/events"
)

// Request encapsulates an item activation.
type Request struct {
	Item    dataset.Item
	Handler func(dataset.Item) tea.Msg
}

// Bus coordinates the execution of item activations.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an activation into a Bubble Tea command while emitting trace
// logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.Item.Key(), req.Item.Payload)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.Item.Key(), req.Item.Payload)
			return nil
		}
		msg := req.Handler(req.Item)
		events.Command.Result(req.Item.Key(), req.Item.Payload, fmt.Sprintf("%T", msg))
		return msg
	}
}
