// Package tui renders the popup and status bar in the terminal with
// bubbletea, and turns key presses into back events.
package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// refreshMsg asks the program to re-render after the popup changed.
type refreshMsg struct{}

// customMsg carries an event posted with Display.Post.
type customMsg uint32

// Display implements ports.Display.
type Display struct {
	opts []tea.ProgramOption

	mu    sync.Mutex
	popup ports.Popup
	prog  *tea.Program
}

// New creates a terminal display. opts are appended to the program options,
// after the alternate screen.
func New(opts ...tea.ProgramOption) *Display {
	return &Display{opts: opts}
}

func (d *Display) ShowPopup(p ports.Popup) {
	d.mu.Lock()
	d.popup = p
	prog := d.prog
	d.mu.Unlock()
	d.send(prog, refreshMsg{})
}

func (d *Display) ResetPopup() {
	d.mu.Lock()
	d.popup = ports.Popup{}
	prog := d.prog
	d.mu.Unlock()
	d.send(prog, refreshMsg{})
}

func (d *Display) Post(event uint32) {
	d.mu.Lock()
	prog := d.prog
	d.mu.Unlock()
	d.send(prog, customMsg(event))
}

// send delivers msg without blocking the caller, which may be the program's
// own Update. Send returns once the program has exited.
func (d *Display) send(prog *tea.Program, msg tea.Msg) {
	if prog == nil {
		return
	}
	go prog.Send(msg)
}

func (d *Display) current() ports.Popup {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.popup
}

// Run starts the terminal program and blocks until the handler declines a
// back event, ctrl+c is pressed, or ctx is done.
func (d *Display) Run(ctx context.Context, h ports.DispatchHandler, status ports.StatusSource) error {
	d.mu.Lock()
	if d.prog != nil {
		d.mu.Unlock()
		return domain.ErrAlreadyRunning
	}
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, d.opts...)
	prog := tea.NewProgram(newModel(d, h, status), opts...)
	d.prog = prog
	d.mu.Unlock()

	_, err := prog.Run()

	d.mu.Lock()
	d.prog = nil
	d.mu.Unlock()

	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil) {
		return nil
	}
	return err
}

// Close detaches from the terminal. Popup calls remain safe afterwards.
func (d *Display) Close() error {
	d.mu.Lock()
	prog := d.prog
	d.prog = nil
	d.mu.Unlock()
	if prog != nil {
		prog.Quit()
	}
	return nil
}

var _ ports.Display = (*Display)(nil)
