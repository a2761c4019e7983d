package focus

import "sync"

// Manager wraps a Context with a mutex, making it safe for concurrent use
// by however many components are registering, navigating, and rendering at
// once. It is the Go analogue of the original's Arc<RwLock<FocusContext>>.
type Manager struct {
	mu  sync.RWMutex
	ctx *Context
}

// NewManager builds a Manager around a fresh Context.
func NewManager() *Manager {
	return &Manager{ctx: NewContext()}
}

// Reset discards all registrations, focus, traps, and groups. Intended for
// test isolation between cases that share a global Manager.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = NewContext()
}

func (m *Manager) withWrite(fn func(*Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.ctx)
}

func (m *Manager) withRead(fn func(*Context)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.ctx)
}

func (m *Manager) Register(id NodeID) {
	m.withWrite(func(c *Context) { c.Register(id) })
}

func (m *Manager) RegisterWithID(id NodeID, focusID string) {
	m.withWrite(func(c *Context) { c.RegisterWithID(id, focusID) })
}

func (m *Manager) RegisterWithGroup(id NodeID, focusID, group string) {
	m.withWrite(func(c *Context) { c.RegisterWithGroup(id, focusID, group) })
}

func (m *Manager) Unregister(id NodeID) {
	m.withWrite(func(c *Context) { c.Unregister(id) })
}

func (m *Manager) Focus(id NodeID) {
	m.withWrite(func(c *Context) { c.Focus(id) })
}

func (m *Manager) FocusByID(focusID string) (ok bool) {
	m.withWrite(func(c *Context) { ok = c.FocusByID(focusID) })
	return ok
}

func (m *Manager) Focused() (id NodeID, ok bool) {
	m.withRead(func(c *Context) { id, ok = c.Focused() })
	return id, ok
}

func (m *Manager) FocusedID() (focusID string, ok bool) {
	m.withRead(func(c *Context) { focusID, ok = c.FocusedID() })
	return focusID, ok
}

func (m *Manager) IsFocused(id NodeID) (focused bool) {
	m.withRead(func(c *Context) { focused = c.IsFocused(id) })
	return focused
}

func (m *Manager) Blur() {
	m.withWrite(func(c *Context) { c.Blur() })
}

func (m *Manager) FocusNext() {
	m.withWrite(func(c *Context) { c.FocusNext() })
}

func (m *Manager) FocusPrev() {
	m.withWrite(func(c *Context) { c.FocusPrev() })
}

func (m *Manager) PushTrap(focusIDs []string) TrapID {
	var id TrapID
	m.withWrite(func(c *Context) { id = c.PushTrap(focusIDs) })
	return id
}

func (m *Manager) PopTrap(id TrapID) (ok bool) {
	m.withWrite(func(c *Context) { ok = c.PopTrap(id) })
	return ok
}

func (m *Manager) HasActiveTrap() (active bool) {
	m.withRead(func(c *Context) { active = c.HasActiveTrap() })
	return active
}

func (m *Manager) FocusGroup(group string) (ok bool) {
	m.withWrite(func(c *Context) { ok = c.FocusGroup(group) })
	return ok
}

func (m *Manager) FocusNextInGroup() {
	m.withWrite(func(c *Context) { c.FocusNextInGroup() })
}

func (m *Manager) FocusPrevInGroup() {
	m.withWrite(func(c *Context) { c.FocusPrevInGroup() })
}
