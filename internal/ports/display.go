package ports

import "context"

// Align positions a popup element relative to its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignTop
	AlignBottom
)

// PopupText is a text element of a popup anchored at (X, Y).
type PopupText struct {
	Text       string
	X, Y       int
	Horizontal Align
	Vertical   Align
}

// PopupIcon is an icon reference anchored at (X, Y).
type PopupIcon struct {
	Name string
	X, Y int
}

// Popup is the content of the single full-screen view slot.
type Popup struct {
	Header PopupText
	Icon   PopupIcon
	Body   PopupText
}

// IsZero reports whether the popup is empty (reset).
func (p Popup) IsZero() bool {
	return p == Popup{}
}

// Status is the status bar content, read on every render.
type Status struct {
	Connected      bool
	LinkAvailable  bool
	TransmitterUp  bool
	FramesSent     uint64
	TransmitErrors uint64
}

// StatusSource supplies the status bar. Must be safe for concurrent use.
type StatusSource interface {
	Status() Status
}

// DispatchHandler receives events from the dispatch loop, on the loop's
// goroutine. Both methods return whether the event was consumed.
type DispatchHandler interface {
	// HandleBack is called for back/cancel input. Returning false stops the loop.
	HandleBack() bool

	// HandleCustom is called for events posted with Display.Post.
	HandleCustom(event uint32) bool
}

// Display is the display and dispatch subsystem.
type Display interface {
	// ShowPopup replaces the popup content and switches to the popup view.
	ShowPopup(p Popup)

	// ResetPopup clears the popup.
	ResetPopup()

	// Post delivers a custom event to the dispatch loop. Safe to call from
	// any goroutine; events posted while the loop is not running are dropped.
	Post(event uint32)

	// Run attaches to the output and blocks dispatching events to h until the
	// handler stops the loop or ctx is done. status is read on every render.
	Run(ctx context.Context, h DispatchHandler, status StatusSource) error

	// Close detaches from the output. Popup calls after Close are no-ops
	// for the output but remain safe.
	Close() error
}
