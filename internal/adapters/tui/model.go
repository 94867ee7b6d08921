package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bft-labs/irbridge/internal/ports"
)

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorSubtext = lipgloss.Color("#a6adc8")
	colorGreen   = lipgloss.Color("#a6e3a1")
	colorRed     = lipgloss.Color("#f38ba8")
	colorPeach   = lipgloss.Color("#fab387")
	colorBorder  = lipgloss.Color("#585b70")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	bodyStyle   = lipgloss.NewStyle().Foreground(colorSubtext)
	iconStyle   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	popupStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	hintStyle   = lipgloss.NewStyle().Foreground(colorBorder)
)

// icons maps icon names to terminal glyphs.
var icons = map[string]string{
	"cvc_36x36": "((•))",
}

type model struct {
	display *Display
	handler ports.DispatchHandler
	status  ports.StatusSource
	width   int
}

func newModel(d *Display, h ports.DispatchHandler, status ports.StatusSource) model {
	return model{display: d, handler: h, status: status}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "q":
			if !m.handler.HandleBack() {
				return m, tea.Quit
			}
		}
	case customMsg:
		m.handler.HandleCustom(uint32(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case refreshMsg:
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderPopup(m.display.current()))
	b.WriteString("\n")
	if m.status != nil {
		b.WriteString(renderStatus(m.status.Status()))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("esc/q back • ctrl+c quit"))
	return b.String()
}

// renderPopup lays the icon out beside the header and body, as anchored on
// the device screen: icon on the left, text to its right, top aligned.
func renderPopup(p ports.Popup) string {
	if p.IsZero() {
		return popupStyle.Render(bodyStyle.Render("(idle)"))
	}

	text := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(p.Header.Text),
		bodyStyle.Render(p.Body.Text),
	)
	if p.Icon.Name == "" {
		return popupStyle.Render(text)
	}

	glyph, ok := icons[p.Icon.Name]
	if !ok {
		glyph = "[" + p.Icon.Name + "]"
	}
	return popupStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, iconStyle.Render(glyph), "  ", text))
}

func renderStatus(s ports.Status) string {
	link := lipgloss.NewStyle().Foreground(colorRed).Render("bluetooth off")
	if s.LinkAvailable {
		if s.Connected {
			link = lipgloss.NewStyle().Foreground(colorGreen).Render("connected")
		} else {
			link = lipgloss.NewStyle().Foreground(colorPeach).Render("advertising")
		}
	}

	tx := lipgloss.NewStyle().Foreground(colorGreen).Render("ir ready")
	if !s.TransmitterUp {
		tx = lipgloss.NewStyle().Foreground(colorRed).Render("ir missing")
	}

	counts := statusStyle.Render(fmt.Sprintf("sent %d • errors %d", s.FramesSent, s.TransmitErrors))
	return link + statusStyle.Render(" • ") + tx + statusStyle.Render(" • ") + counts
}
