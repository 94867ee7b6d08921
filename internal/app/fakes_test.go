package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// recorder collects an ordered trace of calls across fakes.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.calls...)
}

// index returns the position of the first occurrence of call, or -1.
func (r *recorder) index(call string) int {
	for i, c := range r.Calls() {
		if c == call {
			return i
		}
	}
	return -1
}

// lastIndex returns the position of the last occurrence of call, or -1.
func (r *recorder) lastIndex(call string) int {
	calls := r.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i] == call {
			return i
		}
	}
	return -1
}

// fakeRaw implements ports.RawTransmitter and checks for overlapping calls.
type fakeRaw struct {
	mu       sync.Mutex
	calls    [][]uint16
	params   []rawParams
	delay    time.Duration
	err      error
	active   atomic.Int32
	overlaps atomic.Int32
	closed   atomic.Bool
	rec      *recorder
}

type rawParams struct {
	extended  bool
	carrierHz uint32
	duty      float64
}

func (f *fakeRaw) TransmitRaw(durations []uint16, extended bool, carrierHz uint32, dutyCycle float64) error {
	if f.active.Add(1) > 1 {
		f.overlaps.Add(1)
	}
	defer f.active.Add(-1)

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.calls = append(f.calls, append([]uint16(nil), durations...))
	f.params = append(f.params, rawParams{extended, carrierHz, dutyCycle})
	err := f.err
	f.mu.Unlock()
	f.rec.add("tx.transmit")
	return err
}

func (f *fakeRaw) Close() error {
	f.closed.Store(true)
	f.rec.add("tx.close")
	return nil
}

func (f *fakeRaw) Calls() [][]uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]uint16{}, f.calls...)
}

// fakeLink implements ports.Link. Deliver holds a read lock for the whole
// callback so Unregister waits for in-flight deliveries like a real link.
type fakeLink struct {
	cbMu    sync.RWMutex
	cb      ports.ReceiveCallback
	connCb  ports.ConnectionCallback
	hint    int
	openErr error
	advErr  error
	opened  atomic.Bool
	closed  atomic.Bool
	rec     *recorder
}

func (l *fakeLink) Open(ctx context.Context) error {
	l.rec.add("link.open")
	if l.openErr != nil {
		return l.openErr
	}
	l.opened.Store(true)
	return nil
}

func (l *fakeLink) StartAdvertising() error {
	l.rec.add("link.advertise")
	return l.advErr
}

func (l *fakeLink) RegisterReceiveCallback(hint int, cb ports.ReceiveCallback) error {
	l.cbMu.Lock()
	defer l.cbMu.Unlock()
	l.hint = hint
	l.cb = cb
	l.rec.add("link.register")
	return nil
}

func (l *fakeLink) UnregisterReceiveCallback() {
	l.cbMu.Lock()
	defer l.cbMu.Unlock()
	l.cb = nil
	l.rec.add("link.unregister")
}

func (l *fakeLink) SetConnectionCallback(cb ports.ConnectionCallback) {
	l.cbMu.Lock()
	defer l.cbMu.Unlock()
	l.connCb = cb
}

func (l *fakeLink) Close() error {
	l.closed.Store(true)
	l.rec.add("link.close")
	return nil
}

// Deliver feeds ev to the registered callback. Returns false if none is registered.
func (l *fakeLink) Deliver(ev ports.LinkEvent) bool {
	l.cbMu.RLock()
	defer l.cbMu.RUnlock()
	if l.cb == nil {
		return false
	}
	l.cb(ev)
	return true
}

func (l *fakeLink) Connect(connected bool) {
	l.cbMu.RLock()
	cb := l.connCb
	l.cbMu.RUnlock()
	if cb != nil {
		cb(connected)
	}
}

func (l *fakeLink) Registered() bool {
	l.cbMu.RLock()
	defer l.cbMu.RUnlock()
	return l.cb != nil
}

// fakeProbe implements ports.LinkProbe.
type fakeProbe struct {
	err   error
	panic any
}

func (p fakeProbe) Check(context.Context) error {
	if p.panic != nil {
		panic(p.panic)
	}
	return p.err
}

// fakeDisplay implements ports.Display. Back() injects a back event into Run.
type fakeDisplay struct {
	mu       sync.Mutex
	current  ports.Popup
	shows    []ports.Popup
	resets   int
	posted   []uint32
	closed   bool
	runErr   error
	runPanic any

	handler ports.DispatchHandler
	status  ports.StatusSource
	back    chan struct{}
	custom  chan uint32
	running chan struct{}
	once    sync.Once
	rec     *recorder
}

func newFakeDisplay(rec *recorder) *fakeDisplay {
	return &fakeDisplay{
		back:    make(chan struct{}),
		custom:  make(chan uint32, 16),
		running: make(chan struct{}),
		rec:     rec,
	}
}

func (d *fakeDisplay) ShowPopup(p ports.Popup) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = p
	d.shows = append(d.shows, p)
	d.rec.add("display.show")
}

func (d *fakeDisplay) ResetPopup() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = ports.Popup{}
	d.resets++
	d.rec.add("display.reset")
}

func (d *fakeDisplay) Post(ev uint32) {
	d.mu.Lock()
	d.posted = append(d.posted, ev)
	d.mu.Unlock()
	select {
	case d.custom <- ev:
	default:
	}
}

func (d *fakeDisplay) Run(ctx context.Context, h ports.DispatchHandler, status ports.StatusSource) error {
	d.mu.Lock()
	d.handler = h
	d.status = status
	runErr, runPanic := d.runErr, d.runPanic
	d.mu.Unlock()
	d.once.Do(func() { close(d.running) })
	d.rec.add("display.run")

	if runPanic != nil {
		panic(runPanic)
	}
	if runErr != nil {
		return runErr
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-d.custom:
			h.HandleCustom(ev)
		case <-d.back:
			if !h.HandleBack() {
				return nil
			}
		}
	}
}

func (d *fakeDisplay) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.rec.add("display.close")
	return nil
}

func (d *fakeDisplay) Back() { d.back <- struct{}{} }

func (d *fakeDisplay) Current() ports.Popup {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *fakeDisplay) Posted() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]uint32{}, d.posted...)
}

// fakeWatcher implements ports.DeviceWatcher.
type fakeWatcher struct {
	events chan bool
}

func (w *fakeWatcher) Watch(ctx context.Context, fn func(present bool)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case present := <-w.events:
			fn(present)
		}
	}
}

// sinkFunc adapts a function to FrameSink.
type sinkFunc func(ctx context.Context, seq domain.DurationSequence) error

func (f sinkFunc) Submit(ctx context.Context, seq domain.DurationSequence) error { return f(ctx, seq) }

var errHardware = errors.New("hardware busy")

// waitFor polls cond until it holds or the deadline passes.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...ports.Field) {}
func (discardLogger) Info(string, ...ports.Field)  {}
func (discardLogger) Warn(string, ...ports.Field)  {}
func (discardLogger) Error(string, ...ports.Field) {}
