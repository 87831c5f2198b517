// Package tui implements the interactive users and posts browser.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/postdeck/internal/notify"
)

// ErrUnexpectedModel is returned when the program exits with a model of an
// unknown type.
var ErrUnexpectedModel = errors.New("unexpected final model")

// Run starts the browser on the alternate screen and blocks until the user
// quits or ctx is cancelled. Store changes, including timer expiries, are
// forwarded into the program so toasts re-render on their own.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) error {
	m := NewAppModel(ctx, opts)
	defer m.store.Close()

	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(m, progOpts...)

	// Subscribers run on the dispatching goroutine, which may be the event
	// loop itself, so Send must not block it.
	unsubscribe := m.store.Subscribe(func(notify.State) {
		go p.Send(notificationsChangedMsg{})
	})
	defer unsubscribe()

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running browser: %w", err)
	}

	fm, ok := final.(AppModel)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedModel, final)
	}
	return fm.Err()
}
