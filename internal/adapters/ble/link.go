// Package ble exposes the bridge as a BLE peripheral speaking the Nordic
// UART service. Phones write IR frames to the RX characteristic.
package ble

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// Nordic UART service UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	RXUUID      = "6e400002-b5a3-f393-e0a9-e50e24dcca9e"
	TXUUID      = "6e400003-b5a3-f393-e0a9-e50e24dcca9e"
)

// DefaultEnableAttempts bounds how often Open retries enabling the adapter.
const DefaultEnableAttempts = 3

// Config configures the peripheral.
type Config struct {
	LocalName      string
	EnableAttempts int
}

// radio is the slice of *bluetooth.Adapter the link depends on.
type radio interface {
	Enable() error
	AddService(s *bluetooth.Service) error
	SetConnectHandler(c func(device bluetooth.Device, connected bool))
	DefaultAdvertisement() *bluetooth.Advertisement
}

// Link implements ports.Link on top of tinygo.org/x/bluetooth.
type Link struct {
	cfg    Config
	radio  radio
	logger ports.Logger

	openMu sync.Mutex
	opened bool
	adv    *bluetooth.Advertisement
	tx     bluetooth.Characteristic

	// cbMu is held for reading while a callback runs, so Unregister
	// returns only once no delivery is in flight.
	cbMu   sync.RWMutex
	cb     ports.ReceiveCallback
	hint   int
	connCb ports.ConnectionCallback
}

// NewLink creates a link on the platform default adapter.
func NewLink(cfg Config, logger ports.Logger) *Link {
	return newLink(cfg, bluetooth.DefaultAdapter, logger)
}

func newLink(cfg Config, r radio, logger ports.Logger) *Link {
	if cfg.EnableAttempts <= 0 {
		cfg.EnableAttempts = DefaultEnableAttempts
	}
	return &Link{cfg: cfg, radio: r, logger: logger}
}

// Open enables the adapter and publishes the UART service.
func (l *Link) Open(ctx context.Context) error {
	l.openMu.Lock()
	defer l.openMu.Unlock()
	if l.opened {
		return nil
	}

	if err := l.enable(ctx); err != nil {
		return err
	}

	svc, err := l.service()
	if err != nil {
		return err
	}
	if err := l.radio.AddService(svc); err != nil {
		return fmt.Errorf("add uart service: %w", err)
	}

	l.radio.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		l.logger.Debug("central connection", ports.Bool("connected", connected))
		l.cbMu.RLock()
		cb := l.connCb
		l.cbMu.RUnlock()
		if cb != nil {
			cb(connected)
		}
	})

	l.opened = true
	return nil
}

func (l *Link) enable(ctx context.Context) error {
	bo := newBackoff(DefaultBackoffInitial, DefaultBackoffMax)
	var err error
	for attempt := 1; attempt <= l.cfg.EnableAttempts; attempt++ {
		if err = l.radio.Enable(); err == nil {
			return nil
		}
		l.logger.Warn("enable bluetooth adapter failed",
			ports.Err(err),
			ports.Int("attempt", attempt),
			ports.Duration("retry_in", bo.Current()),
		)
		if attempt == l.cfg.EnableAttempts {
			break
		}
		if werr := bo.Wait(ctx); werr != nil {
			return werr
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrLinkUnavailable, err)
}

func (l *Link) service() (*bluetooth.Service, error) {
	svcUUID, err := bluetooth.ParseUUID(ServiceUUID)
	if err != nil {
		return nil, err
	}
	rxUUID, err := bluetooth.ParseUUID(RXUUID)
	if err != nil {
		return nil, err
	}
	txUUID, err := bluetooth.ParseUUID(TXUUID)
	if err != nil {
		return nil, err
	}

	return &bluetooth.Service{
		UUID: svcUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  rxUUID,
				Flags: bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					l.deliver(value)
				},
			},
			{
				Handle: &l.tx,
				UUID:   txUUID,
				Flags:  bluetooth.CharacteristicNotifyPermission | bluetooth.CharacteristicReadPermission,
			},
		},
	}, nil
}

// deliver hands value to the receive callback as a single event. Each RX
// write is one frame; the buffer size hint is advisory only.
func (l *Link) deliver(value []byte) {
	l.cbMu.RLock()
	defer l.cbMu.RUnlock()
	if l.cb == nil || len(value) == 0 {
		return
	}
	if l.hint > 0 && len(value) > l.hint {
		l.logger.Debug("write exceeds buffer size hint", ports.Int("size", len(value)), ports.Int("hint", l.hint))
	}
	l.cb(ports.LinkEvent{Kind: ports.DataReceived, Buffer: value})
}

// StartAdvertising advertises the UART service under the configured name.
func (l *Link) StartAdvertising() error {
	l.openMu.Lock()
	defer l.openMu.Unlock()
	if !l.opened {
		return errors.New("link not open")
	}

	svcUUID, err := bluetooth.ParseUUID(ServiceUUID)
	if err != nil {
		return err
	}
	adv := l.radio.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    l.cfg.LocalName,
		ServiceUUIDs: []bluetooth.UUID{svcUUID},
	}); err != nil {
		return fmt.Errorf("configure advertisement: %w", err)
	}
	if err := adv.Start(); err != nil {
		return fmt.Errorf("start advertisement: %w", err)
	}
	l.adv = adv
	l.logger.Info("advertising", ports.String("name", l.cfg.LocalName))
	return nil
}

// RegisterReceiveCallback installs cb. Only one callback is held at a time.
func (l *Link) RegisterReceiveCallback(hint int, cb ports.ReceiveCallback) error {
	if cb == nil {
		return errors.New("nil receive callback")
	}
	l.cbMu.Lock()
	defer l.cbMu.Unlock()
	l.cb = cb
	l.hint = hint
	return nil
}

// UnregisterReceiveCallback removes the callback. No invocation is running
// once it returns.
func (l *Link) UnregisterReceiveCallback() {
	l.cbMu.Lock()
	defer l.cbMu.Unlock()
	l.cb = nil
}

func (l *Link) SetConnectionCallback(cb ports.ConnectionCallback) {
	l.cbMu.Lock()
	defer l.cbMu.Unlock()
	l.connCb = cb
}

// Close stops advertising. The adapter itself stays enabled.
func (l *Link) Close() error {
	l.openMu.Lock()
	defer l.openMu.Unlock()

	l.UnregisterReceiveCallback()
	l.SetConnectionCallback(nil)

	if l.adv == nil {
		return nil
	}
	err := l.adv.Stop()
	l.adv = nil
	if err != nil {
		return fmt.Errorf("stop advertisement: %w", err)
	}
	return nil
}

var _ ports.Link = (*Link)(nil)
