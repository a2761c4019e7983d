package focus

import "sync"

var (
	globalOnce sync.Once
	global     *Manager
)

// Global returns the process-wide Manager, creating it on first use.
func Global() *Manager {
	globalOnce.Do(func() { global = NewManager() })
	return global
}

// ResetGlobal discards all state in the global Manager. Intended for test
// isolation between cases that exercise package-level focus helpers.
func ResetGlobal() {
	Global().Reset()
}

// FocusNext advances focus in the global Manager.
func FocusNext() { Global().FocusNext() }

// FocusPrev moves focus backward in the global Manager.
func FocusPrev() { Global().FocusPrev() }

// SetFocus focuses a component by string id in the global Manager,
// reporting whether the id was known.
func SetFocus(focusID string) bool { return Global().FocusByID(focusID) }

// FocusedID returns the string id of the currently focused component in
// the global Manager, if any.
func FocusedID() (string, bool) { return Global().FocusedID() }

// BlurAll clears focus in the global Manager.
func BlurAll() { Global().Blur() }
