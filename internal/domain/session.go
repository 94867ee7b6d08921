package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the single long-lived UI state of one bridging run.
// Its attributes are purely presentational.
type Session struct {
	// ID identifies the run in logs and on the status endpoint.
	ID string

	// StartedAt is when the session was created.
	StartedAt time.Time

	// Header is the title line of the status popup.
	Header string

	// Icon names the status icon.
	Icon string

	// Text is the popup body.
	Text string
}

// Presentation defaults for the bridging popup.
const (
	DefaultHeader = "Forwarding"
	DefaultIcon   = "cvc_36x36"
	DefaultText   = "irplus signals \nvia bluetooth"
)

// NewSession creates a session with a fresh ID and the default popup content.
func NewSession() Session {
	return Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Header:    DefaultHeader,
		Icon:      DefaultIcon,
		Text:      DefaultText,
	}
}
