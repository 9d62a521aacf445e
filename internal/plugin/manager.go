package plugin

import (
	"fmt"
	"sync"

	"github.com/dshills/caretkit/internal/logging"
)

// Manager records which plugins are attached to which hosts.
type Manager struct {
	mu sync.RWMutex

	entries map[entryKey]*entry
	// order of first attachment per host, for deterministic listing
	order map[string][]string

	eventHandlers []EventHandler
	logger        *logging.Logger
}

type entryKey struct {
	host   string
	plugin string
}

type entry struct {
	state State
}

// EventHandler observes manager events. Panics in handlers are recovered.
type EventHandler func(ev ManagerEvent)

// ManagerEvent reports the outcome of an attachment.
type ManagerEvent struct {
	Type   EventType
	Host   string
	Plugin string
	Error  error
}

// EventType is the kind of a ManagerEvent.
type EventType int

const (
	EventAttached EventType = iota
	EventAttachFailed
)

func (t EventType) String() string {
	switch t {
	case EventAttached:
		return "attached"
	case EventAttachFailed:
		return "attach-failed"
	default:
		return "unknown"
	}
}

// NewManager returns an empty manager. A nil logger disables logging.
func NewManager(logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Null
	}
	return &Manager{
		entries: make(map[entryKey]*entry),
		order:   make(map[string][]string),
		logger:  logger.WithComponent("plugin"),
	}
}

// Attach runs p's Attach hook against h and records the result.
// Attaching the same plugin name to the same host twice fails with
// ErrAlreadyAttached; a plugin whose previous attempt failed may retry.
func (m *Manager) Attach(h Host, p Plugin) error {
	if h == nil {
		return ErrNilHost
	}
	if p == nil {
		return ErrNilPlugin
	}
	k := entryKey{host: h.ID(), plugin: p.Name()}

	m.mu.Lock()
	e, ok := m.entries[k]
	if ok && e.state == StateAttached {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyAttached, p.Name())
	}
	if !ok {
		e = &entry{}
		m.entries[k] = e
		m.order[k.host] = append(m.order[k.host], k.plugin)
	}
	e.state = StateAttached
	m.mu.Unlock()

	if err := p.Attach(h); err != nil {
		m.mu.Lock()
		e.state = StateError
		m.mu.Unlock()

		m.logger.WithField("host", k.host).Error("attach %s: %v", k.plugin, err)
		m.emitEvent(ManagerEvent{Type: EventAttachFailed, Host: k.host, Plugin: k.plugin, Error: err})
		return fmt.Errorf("%w: %s: %w", ErrAttachFailed, k.plugin, err)
	}

	m.logger.WithField("host", k.host).Debug("attached %s", k.plugin)
	m.emitEvent(ManagerEvent{Type: EventAttached, Host: k.host, Plugin: k.plugin})
	return nil
}

// State returns the attachment state of the named plugin on h.
func (m *Manager) State(h Host, name string) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[entryKey{host: h.ID(), plugin: name}]; ok {
		return e.state
	}
	return StateDetached
}

// Plugins returns the names of plugins attached to h in attachment order.
func (m *Manager) Plugins(h Host) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for _, name := range m.order[h.ID()] {
		if m.entries[entryKey{host: h.ID(), plugin: name}].state == StateAttached {
			names = append(names, name)
		}
	}
	return names
}

// Subscribe registers handler for manager events and returns a function
// that removes it.
func (m *Manager) Subscribe(handler EventHandler) func() {
	if handler == nil {
		return func() {}
	}

	m.mu.Lock()
	m.eventHandlers = append(m.eventHandlers, handler)
	idx := len(m.eventHandlers) - 1
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.eventHandlers) {
			m.eventHandlers[idx] = nil
		}
	}
}

func (m *Manager) emitEvent(ev ManagerEvent) {
	m.mu.RLock()
	handlers := make([]EventHandler, len(m.eventHandlers))
	copy(handlers, m.eventHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		func() {
			defer func() {
				_ = recover()
			}()
			handler(ev)
		}()
	}
}
