// Package focus provides Tab/Shift-Tab focus navigation for terminal UI
// components: a registry of focusable nodes, modal focus traps that confine
// navigation to a subset, and named groups for regional navigation.
package focus

import "sync/atomic"

// NodeID uniquely identifies a focusable component instance.
type NodeID uint64

var nodeIDCounter uint64

// NewNodeID returns a fresh, process-unique NodeID.
func NewNodeID() NodeID {
	return NodeID(atomic.AddUint64(&nodeIDCounter, 1))
}

// TrapID identifies a pushed focus trap, needed to pop it later.
type TrapID uint64

var trapIDCounter uint64

func newTrapID() TrapID {
	return TrapID(atomic.AddUint64(&trapIDCounter, 1))
}

// trap confines Tab/Shift-Tab navigation to a resolved set of nodes until
// popped, at which point focus restores to whatever was focused before the
// trap was pushed.
type trap struct {
	id             TrapID
	resolved       *orderedSet
	previousFocus  NodeID
	hadPrevious    bool
}

// Context holds all focus state: the registry, current focus, trap stack,
// and named groups. Build one with NewContext; the zero value has no
// registry or maps and panics on Register.
type Context struct {
	focused     NodeID
	hasFocused  bool
	focusable   *orderedSet
	idToNode    map[string]NodeID
	nodeToID    map[NodeID]string
	traps       []*trap
	groups      map[string]*orderedSet
	nodeToGroup map[NodeID]string
}

// NewContext builds an empty focus context.
func NewContext() *Context {
	return &Context{
		focusable:   newOrderedSet(),
		idToNode:    make(map[string]NodeID),
		nodeToID:    make(map[NodeID]string),
		groups:      make(map[string]*orderedSet),
		nodeToGroup: make(map[NodeID]string),
	}
}

// Register adds a focusable node with no string id or group.
func (c *Context) Register(id NodeID) {
	c.focusable.insert(id)
}

// RegisterWithID adds a focusable node addressable by a string id.
func (c *Context) RegisterWithID(id NodeID, focusID string) {
	c.focusable.insert(id)
	c.idToNode[focusID] = id
	c.nodeToID[id] = focusID
}

// RegisterWithGroup adds a focusable node addressable by a string id and
// belonging to a named navigation group.
func (c *Context) RegisterWithGroup(id NodeID, focusID, group string) {
	c.RegisterWithID(id, focusID)
	g, ok := c.groups[group]
	if !ok {
		g = newOrderedSet()
		c.groups[group] = g
	}
	g.insert(id)
	c.nodeToGroup[id] = group
}

// Unregister removes a node from the registry, clearing focus if it was
// focused and cleaning up any string-id or group membership.
func (c *Context) Unregister(id NodeID) {
	c.focusable.remove(id)
	if c.hasFocused && c.focused == id {
		c.hasFocused = false
	}
	if focusID, ok := c.nodeToID[id]; ok {
		delete(c.idToNode, focusID)
		delete(c.nodeToID, id)
	}
	if group, ok := c.nodeToGroup[id]; ok {
		if g, ok := c.groups[group]; ok {
			g.remove(id)
			if g.empty() {
				delete(c.groups, group)
			}
		}
		delete(c.nodeToGroup, id)
	}
}

// Focus sets focus to id, if it is registered.
func (c *Context) Focus(id NodeID) {
	if c.focusable.contains(id) {
		c.focused, c.hasFocused = id, true
	}
}

// FocusByID sets focus by string id, reporting whether the id was known.
func (c *Context) FocusByID(focusID string) bool {
	id, ok := c.idToNode[focusID]
	if !ok {
		return false
	}
	c.focused, c.hasFocused = id, true
	return true
}

// Focused returns the currently focused node, if any.
func (c *Context) Focused() (NodeID, bool) {
	return c.focused, c.hasFocused
}

// FocusedID returns the string id of the currently focused node, if any.
func (c *Context) FocusedID() (string, bool) {
	if !c.hasFocused {
		return "", false
	}
	id, ok := c.nodeToID[c.focused]
	return id, ok
}

// IsFocused reports whether id currently has focus.
func (c *Context) IsFocused(id NodeID) bool {
	return c.hasFocused && c.focused == id
}

// Blur clears focus entirely.
func (c *Context) Blur() {
	c.hasFocused = false
}

// FocusNext advances focus to the next registered node, wrapping around,
// respecting the active trap if one exists.
func (c *Context) FocusNext() {
	if t := c.activeTrap(); t != nil {
		c.focusNextIn(t.resolved)
		return
	}
	c.focusNextIn(c.focusable)
}

// FocusPrev moves focus to the previous registered node, wrapping around,
// respecting the active trap if one exists.
func (c *Context) FocusPrev() {
	if t := c.activeTrap(); t != nil {
		c.focusPrevIn(t.resolved)
		return
	}
	c.focusPrevIn(c.focusable)
}

func (c *Context) focusNextIn(set *orderedSet) {
	if set.empty() {
		return
	}
	next := 0
	if c.hasFocused {
		if pos, ok := set.indexOf(c.focused); ok {
			next = (pos + 1) % set.len()
		}
	}
	if id, ok := set.at(next); ok {
		c.focused, c.hasFocused = id, true
	}
}

func (c *Context) focusPrevIn(set *orderedSet) {
	if set.empty() {
		return
	}
	prev := set.len() - 1
	if c.hasFocused {
		if pos, ok := set.indexOf(c.focused); ok {
			if pos == 0 {
				prev = set.len() - 1
			} else {
				prev = pos - 1
			}
		}
	}
	if id, ok := set.at(prev); ok {
		c.focused, c.hasFocused = id, true
	}
}

// PushTrap confines FocusNext/FocusPrev to the nodes registered under
// focusIDs, focusing the first resolved node, and returns a TrapID used to
// pop it. Unresolved ids (not yet registered) are silently skipped.
func (c *Context) PushTrap(focusIDs []string) TrapID {
	t := &trap{id: newTrapID(), resolved: newOrderedSet()}
	if c.hasFocused {
		t.previousFocus, t.hadPrevious = c.focused, true
	}
	for _, focusID := range focusIDs {
		if id, ok := c.idToNode[focusID]; ok {
			t.resolved.insert(id)
		}
	}
	if first, ok := t.resolved.at(0); ok {
		c.focused, c.hasFocused = first, true
	}
	c.traps = append(c.traps, t)
	return t.id
}

// PopTrap removes the trap with the given id and restores the focus that
// was active before it was pushed. Reports whether a trap was found.
func (c *Context) PopTrap(id TrapID) bool {
	for i, t := range c.traps {
		if t.id != id {
			continue
		}
		c.traps = append(c.traps[:i], c.traps[i+1:]...)
		c.hasFocused = t.hadPrevious
		c.focused = t.previousFocus
		return true
	}
	return false
}

// HasActiveTrap reports whether a focus trap is currently on the stack.
func (c *Context) HasActiveTrap() bool {
	return len(c.traps) > 0
}

func (c *Context) activeTrap() *trap {
	if len(c.traps) == 0 {
		return nil
	}
	return c.traps[len(c.traps)-1]
}

// FocusGroup focuses the first node registered in the named group.
// Reports whether the group exists and has members.
func (c *Context) FocusGroup(group string) bool {
	g, ok := c.groups[group]
	if !ok || g.empty() {
		return false
	}
	id, _ := g.at(0)
	c.focused, c.hasFocused = id, true
	return true
}

// FocusNextInGroup advances focus within the focused node's group, falling
// back to FocusNext if the focused node has no group.
func (c *Context) FocusNextInGroup() {
	if g := c.currentGroup(); g != nil {
		c.focusNextIn(g)
		return
	}
	c.FocusNext()
}

// FocusPrevInGroup moves focus backward within the focused node's group,
// falling back to FocusPrev if the focused node has no group.
func (c *Context) FocusPrevInGroup() {
	if g := c.currentGroup(); g != nil {
		c.focusPrevIn(g)
		return
	}
	c.FocusPrev()
}

func (c *Context) currentGroup() *orderedSet {
	if !c.hasFocused {
		return nil
	}
	name, ok := c.nodeToGroup[c.focused]
	if !ok {
		return nil
	}
	return c.groups[name]
}

// GroupOf returns the group name a node belongs to, if any.
func (c *Context) GroupOf(id NodeID) (string, bool) {
	name, ok := c.nodeToGroup[id]
	return name, ok
}
