package app

import (
	"sync"
	"time"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// ShutdownTimeout is the default bound on each teardown wait.
const ShutdownTimeout = 30 * time.Second

// State is the phase of one bridge activation.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

var stateNames = [...]string{
	StateStopped:  "Stopped",
	StateStarting: "Starting",
	StateRunning:  "Running",
	StateStopping: "Stopping",
	StateCrashed:  "Crashed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// idle reports whether a new activation may begin from s.
func (s State) idle() bool {
	return s == StateStopped || s == StateCrashed
}

// StateObserver is told about every phase change of the bridge.
type StateObserver interface {
	OnStateChange(previous, current State, reason string)
}

// phaseEdges lists the phases reachable from each phase. A bridge that
// crashed or stopped can only be activated again.
var phaseEdges = map[State][]State{
	StateStopped:  {StateStarting},
	StateStarting: {StateRunning, StateStopping, StateCrashed},
	StateRunning:  {StateStopping, StateCrashed},
	StateStopping: {StateStopped, StateCrashed},
	StateCrashed:  {StateStarting},
}

// lifecycle tracks the bridge phase and the background workers started
// during an activation (currently the transmitter watcher).
type lifecycle struct {
	mu       sync.RWMutex
	state    State
	workers  sync.WaitGroup
	logger   ports.Logger
	observer StateObserver
}

func newLifecycle(logger ports.Logger, observer StateObserver) *lifecycle {
	return &lifecycle{logger: logger, observer: observer}
}

func (l *lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// begin moves an idle bridge to Starting. It fails with
// domain.ErrAlreadyRunning while an activation is in progress.
func (l *lifecycle) begin(reason string) error {
	return l.moveTo(StateStarting, reason)
}

// moveTo changes phase if next is reachable from the current one. Leaving
// an idle phase the wrong way is ErrNotRunning; anything else is
// ErrAlreadyRunning.
func (l *lifecycle) moveTo(next State, reason string) error {
	l.mu.Lock()
	prev := l.state
	if !reachable(prev, next) {
		l.mu.Unlock()
		if prev.idle() {
			return domain.ErrNotRunning
		}
		return domain.ErrAlreadyRunning
	}
	l.state = next
	l.mu.Unlock()

	if l.observer != nil {
		l.observer.OnStateChange(prev, next, reason)
	}
	l.logger.Info("bridge state",
		ports.String("from", prev.String()),
		ports.String("to", next.String()),
		ports.String("reason", reason),
	)
	return nil
}

func reachable(from, to State) bool {
	for _, s := range phaseEdges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// winding reports whether teardown should announce Stopping.
func (l *lifecycle) winding() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateStarting || l.state == StateRunning
}

func (l *lifecycle) spawn(fn func()) {
	l.workers.Add(1)
	go func() {
		defer l.workers.Done()
		fn()
	}()
}

// drain waits for spawned workers. They must already have been told to stop.
func (l *lifecycle) drain(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		l.workers.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
		l.logger.Warn("workers still running after teardown", ports.Duration("timeout", timeout))
		return domain.ErrShutdownTimeout
	}
}
