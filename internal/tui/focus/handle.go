package focus

// Callback is invoked on focus/blur transitions, outside the manager's
// lock so it may safely call back into the manager (e.g. to focus another
// handle).
type Callback func()

// Handle is one component's registration in a Manager. Go has no
// destructors, so callers must explicitly call Close (or Unregister) when
// the component is torn down, in place of the original's Drop-based
// auto-unregister.
type Handle struct {
	id      NodeID
	mgr     *Manager
	focusID string
	group   string
	onFocus Callback
	onBlur  Callback
	closed  bool
}

// NewHandle registers a bare, anonymous focusable node.
func NewHandle(mgr *Manager) *Handle {
	id := NewNodeID()
	mgr.Register(id)
	return &Handle{id: id, mgr: mgr}
}

// NewHandleWithID registers a focusable node addressable by focusID.
func NewHandleWithID(mgr *Manager, focusID string) *Handle {
	id := NewNodeID()
	mgr.RegisterWithID(id, focusID)
	return &Handle{id: id, mgr: mgr, focusID: focusID}
}

// NewHandleWithGroup registers a focusable node addressable by focusID and
// belonging to group.
func NewHandleWithGroup(mgr *Manager, focusID, group string) *Handle {
	id := NewNodeID()
	mgr.RegisterWithGroup(id, focusID, group)
	return &Handle{id: id, mgr: mgr, focusID: focusID, group: group}
}

// OnFocus sets the callback invoked when this handle gains focus.
func (h *Handle) OnFocus(cb Callback) *Handle {
	h.onFocus = cb
	return h
}

// OnBlur sets the callback invoked when this handle loses focus.
func (h *Handle) OnBlur(cb Callback) *Handle {
	h.onBlur = cb
	return h
}

// ID returns this handle's NodeID.
func (h *Handle) ID() NodeID { return h.id }

// FocusID returns the string focus id, if one was set.
func (h *Handle) FocusID() (string, bool) { return h.focusID, h.focusID != "" }

// Group returns the group name, if one was set.
func (h *Handle) Group() (string, bool) { return h.group, h.group != "" }

// IsFocused reports whether this handle currently has focus.
func (h *Handle) IsFocused() bool {
	return h.mgr.IsFocused(h.id)
}

// Focus gives this handle focus and invokes its on-focus callback, if set.
func (h *Handle) Focus() {
	h.mgr.Focus(h.id)
	invoke(h.onFocus)
}

// Blur removes focus from this handle, if it had it, and invokes its
// on-blur callback.
func (h *Handle) Blur() {
	wasFocused := h.mgr.IsFocused(h.id)
	if wasFocused {
		h.mgr.Blur()
	}
	if wasFocused {
		invoke(h.onBlur)
	}
}

// Unregister removes this handle's node from the manager. Safe to call
// more than once.
func (h *Handle) Unregister() {
	if h.closed {
		return
	}
	h.closed = true
	h.mgr.Unregister(h.id)
}

// Close is an alias for Unregister, for callers that prefer io.Closer-style
// teardown.
func (h *Handle) Close() error {
	h.Unregister()
	return nil
}

// invoke runs a callback with a recovered panic guard so a misbehaving
// on-focus/on-blur callback can't bring down the component tree.
func invoke(cb Callback) {
	if cb == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	cb()
}
