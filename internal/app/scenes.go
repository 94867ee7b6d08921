package app

import (
	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// Popup layout shared by the scenes.
const (
	popupTextX = 64
	popupIconX = 10
	popupIconY = 10
	headerY    = 10
	bodyY      = 20
)

// bridgingScene is shown while frames are being forwarded. It consumes no
// events, so back propagates to termination.
type bridgingScene struct {
	session domain.Session
}

func newBridgingScene(session domain.Session) *bridgingScene {
	return &bridgingScene{session: session}
}

func (s *bridgingScene) OnEnter(d ports.Display) {
	d.ResetPopup()
	d.ShowPopup(statusPopup(s.session.Header, s.session.Icon, s.session.Text))
}

func (s *bridgingScene) OnEvent(SceneEvent) bool { return false }

func (s *bridgingScene) OnExit(d ports.Display) { d.ResetPopup() }

// linkUnavailableScene is shown when the radio could not be brought up.
type linkUnavailableScene struct{}

const (
	linkUnavailableHeader = "Bluetooth off"
	linkUnavailableText   = "Please, enable the Bluetooth\nand restart the app"
)

func (linkUnavailableScene) OnEnter(d ports.Display) {
	d.ResetPopup()
	d.ShowPopup(statusPopup(linkUnavailableHeader, domain.DefaultIcon, linkUnavailableText))
}

func (linkUnavailableScene) OnEvent(SceneEvent) bool { return false }

func (linkUnavailableScene) OnExit(d ports.Display) { d.ResetPopup() }

func statusPopup(header, icon, text string) ports.Popup {
	return ports.Popup{
		Header: ports.PopupText{Text: header, X: popupTextX, Y: headerY, Horizontal: ports.AlignLeft, Vertical: ports.AlignTop},
		Icon:   ports.PopupIcon{Name: icon, X: popupIconX, Y: popupIconY},
		Body:   ports.PopupText{Text: text, X: popupTextX, Y: bodyY, Horizontal: ports.AlignLeft, Vertical: ports.AlignTop},
	}
}
