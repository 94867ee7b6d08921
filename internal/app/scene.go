package app

import (
	"fmt"
	"sync"

	"github.com/bft-labs/irbridge/internal/ports"
)

// SceneID identifies a scene in the scene table.
type SceneID int

const (
	SceneBridgingActive SceneID = iota
	SceneLinkUnavailable
)

// String returns a human-readable representation of the scene.
func (id SceneID) String() string {
	switch id {
	case SceneBridgingActive:
		return "BridgingActive"
	case SceneLinkUnavailable:
		return "LinkUnavailable"
	default:
		return fmt.Sprintf("Scene(%d)", int(id))
	}
}

// Custom events posted to the dispatch loop.
const (
	EventConnectionChanged uint32 = iota + 1
	EventTransmitterChanged
)

// SceneEventKind classifies a SceneEvent.
type SceneEventKind int

const (
	SceneEventCustom SceneEventKind = iota
	SceneEventBack
)

// SceneEvent is delivered to the active scene.
type SceneEvent struct {
	Kind   SceneEventKind
	Custom uint32
}

// Scene is one UI state. OnEnter and OnExit are always paired.
type Scene interface {
	OnEnter(d ports.Display)
	// OnEvent returns true if the scene consumed the event.
	OnEvent(ev SceneEvent) bool
	OnExit(d ports.Display)
}

// SceneManager drives a stack of scenes looked up in a fixed table.
// It implements ports.DispatchHandler.
type SceneManager struct {
	mu      sync.Mutex
	display ports.Display
	scenes  map[SceneID]Scene
	stack   []SceneID
	logger  ports.Logger
}

// NewSceneManager creates a manager over the given scene table.
func NewSceneManager(display ports.Display, logger ports.Logger, scenes map[SceneID]Scene) *SceneManager {
	table := make(map[SceneID]Scene, len(scenes))
	for id, s := range scenes {
		table[id] = s
	}
	return &SceneManager{
		display: display,
		scenes:  table,
		logger:  logger,
	}
}

// Next exits the active scene, if any, and enters id.
func (m *SceneManager) Next(id SceneID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := m.scenes[id]
	if !ok {
		return fmt.Errorf("unknown scene %s", id)
	}
	if len(m.stack) > 0 {
		m.exitLocked(m.stack[len(m.stack)-1])
	}
	m.stack = append(m.stack, id)
	m.logger.Debug("scene enter", ports.String("scene", id.String()))
	next.OnEnter(m.display)
	return nil
}

// Current returns the active scene.
func (m *SceneManager) Current() (SceneID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) == 0 {
		return 0, false
	}
	return m.stack[len(m.stack)-1], true
}

// HandleCustom offers a custom event to the active scene.
func (m *SceneManager) HandleCustom(event uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) == 0 {
		return false
	}
	return m.scenes[m.stack[len(m.stack)-1]].OnEvent(SceneEvent{Kind: SceneEventCustom, Custom: event})
}

// HandleBack offers a back event to the active scene. If the scene does not
// consume it, the scene is exited and the previous one re-entered. Returns
// false once no scene is left, which ends the dispatch loop.
func (m *SceneManager) HandleBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) == 0 {
		return false
	}

	top := m.stack[len(m.stack)-1]
	if m.scenes[top].OnEvent(SceneEvent{Kind: SceneEventBack}) {
		return true
	}

	m.exitLocked(top)
	m.stack = m.stack[:len(m.stack)-1]
	if len(m.stack) == 0 {
		return false
	}

	prev := m.stack[len(m.stack)-1]
	m.logger.Debug("scene enter", ports.String("scene", prev.String()))
	m.scenes[prev].OnEnter(m.display)
	return true
}

// Stop exits the active scene, if one is still entered, and clears the stack.
// Safe to call more than once.
func (m *SceneManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) > 0 {
		m.exitLocked(m.stack[len(m.stack)-1])
	}
	m.stack = nil
}

func (m *SceneManager) exitLocked(id SceneID) {
	m.logger.Debug("scene exit", ports.String("scene", id.String()))
	m.scenes[id].OnExit(m.display)
}

var _ ports.DispatchHandler = (*SceneManager)(nil)
