// Package bluez checks, over the system D-Bus, that the BlueZ daemon is
// running and the local adapter is powered before the link is opened.
package bluez

import (
	"context"
	"fmt"
	"slices"

	"github.com/godbus/dbus/v5"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

const (
	busName      = "org.bluez"
	adapterIface = "org.bluez.Adapter1"
	propsIface   = "org.freedesktop.DBus.Properties"
)

// DefaultAdapter is the HCI device probed when none is configured.
const DefaultAdapter = "hci0"

// adapterObjectPath converts an HCI name like "hci0" to its BlueZ object path.
func adapterObjectPath(hci string) dbus.ObjectPath {
	return dbus.ObjectPath("/org/bluez/" + hci)
}

// Probe implements ports.LinkProbe.
type Probe struct {
	hci     string
	logger  ports.Logger
	connect func() (*dbus.Conn, error)
}

// NewProbe creates a probe for the named adapter.
func NewProbe(hci string, logger ports.Logger) *Probe {
	if hci == "" {
		hci = DefaultAdapter
	}
	return &Probe{
		hci:     hci,
		logger:  logger,
		connect: func() (*dbus.Conn, error) { return dbus.ConnectSystemBus() },
	}
}

// Check returns nil if BlueZ is on the bus and the adapter is powered.
// Any other outcome wraps domain.ErrLinkUnavailable.
func (p *Probe) Check(ctx context.Context) error {
	conn, err := p.connect()
	if err != nil {
		return unavailable("connect to system bus: %w", err)
	}
	defer conn.Close()

	var names []string
	if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return unavailable("list bus names: %w", err)
	}
	if !slices.Contains(names, busName) {
		return unavailable("%s not found on system bus, is bluetooth.service running?", busName)
	}

	var v dbus.Variant
	obj := conn.Object(busName, adapterObjectPath(p.hci))
	if err := obj.CallWithContext(ctx, propsIface+".Get", 0, adapterIface, "Powered").Store(&v); err != nil {
		return unavailable("read %s power state: %w", p.hci, err)
	}
	powered, err := poweredValue(v)
	if err != nil {
		return unavailable("%s: %w", p.hci, err)
	}
	if !powered {
		return unavailable("adapter %s is powered off", p.hci)
	}

	p.logger.Debug("bluetooth adapter ready", ports.String("hci", p.hci))
	return nil
}

func poweredValue(v dbus.Variant) (bool, error) {
	val, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("property Powered is not bool (%s)", v.Signature())
	}
	return val, nil
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %w", domain.ErrLinkUnavailable, fmt.Errorf(format, args...))
}

var _ ports.LinkProbe = (*Probe)(nil)
