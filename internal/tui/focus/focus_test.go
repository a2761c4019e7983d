package focus

import "testing"

func TestFocusNext_WrapsInInsertionOrder(t *testing.T) {
	mgr := NewManager()
	a := NewHandleWithID(mgr, "a")
	b := NewHandleWithID(mgr, "b")
	c := NewHandleWithID(mgr, "c")

	mgr.FocusNext()
	if !a.IsFocused() {
		t.Fatalf("expected a focused first")
	}
	mgr.FocusNext()
	if !b.IsFocused() {
		t.Fatalf("expected b focused second")
	}
	mgr.FocusNext()
	if !c.IsFocused() {
		t.Fatalf("expected c focused third")
	}
	mgr.FocusNext()
	if !a.IsFocused() {
		t.Fatalf("expected focus to wrap back to a")
	}
}

func TestFocusTrap_ConfinesNavigationAndRestores(t *testing.T) {
	mgr := NewManager()
	NewHandleWithID(mgr, "page-a")
	NewHandleWithID(mgr, "page-b")
	mgr.FocusByID("page-a")

	trapID := mgr.PushTrap([]string{"modal-ok", "modal-cancel"})
	modalOK := NewHandleWithID(mgr, "modal-ok")
	_ = NewHandleWithID(mgr, "modal-cancel")

	// Trap was pushed before modal handles were registered, so it couldn't
	// resolve them; push it again now that they exist to get a usable trap.
	mgr.PopTrap(trapID)
	trapID = mgr.PushTrap([]string{"modal-ok", "modal-cancel"})

	if !modalOK.IsFocused() {
		t.Fatalf("expected first trapped element focused, got focused=%v", func() string {
			id, _ := mgr.FocusedID()
			return id
		}())
	}

	mgr.FocusNext()
	id, _ := mgr.FocusedID()
	if id != "modal-cancel" {
		t.Fatalf("expected trap to confine navigation to modal-cancel, got %q", id)
	}

	mgr.FocusNext()
	id, _ = mgr.FocusedID()
	if id != "modal-ok" {
		t.Fatalf("expected trapped navigation to wrap within the trap, got %q", id)
	}

	if !mgr.PopTrap(trapID) {
		t.Fatalf("expected PopTrap to find the trap")
	}
	id, _ = mgr.FocusedID()
	if id != "page-a" {
		t.Fatalf("expected focus restored to page-a after popping trap, got %q", id)
	}
}

func TestFocusGroup_NavigatesWithinGroupOnly(t *testing.T) {
	mgr := NewManager()
	NewHandleWithGroup(mgr, "side-1", "sidebar")
	NewHandleWithGroup(mgr, "side-2", "sidebar")
	NewHandleWithGroup(mgr, "main-1", "main")

	if !mgr.FocusGroup("sidebar") {
		t.Fatalf("expected sidebar group to exist")
	}
	id, _ := mgr.FocusedID()
	if id != "side-1" {
		t.Fatalf("expected side-1 focused first in group, got %q", id)
	}

	mgr.FocusNextInGroup()
	id, _ = mgr.FocusedID()
	if id != "side-2" {
		t.Fatalf("expected side-2 next within sidebar group, got %q", id)
	}

	mgr.FocusNextInGroup()
	id, _ = mgr.FocusedID()
	if id != "side-1" {
		t.Fatalf("expected group navigation to wrap within sidebar, not escape to main-1, got %q", id)
	}
}

func TestHandle_CallbacksInvokedOnFocusAndBlur(t *testing.T) {
	mgr := NewManager()
	var focused, blurred bool
	h := NewHandleWithID(mgr, "x").
		OnFocus(func() { focused = true }).
		OnBlur(func() { blurred = true })

	h.Focus()
	if !focused {
		t.Fatalf("expected on-focus callback invoked")
	}
	h.Blur()
	if !blurred {
		t.Fatalf("expected on-blur callback invoked")
	}
}

func TestHandle_PanickingCallbackDoesNotPropagate(t *testing.T) {
	mgr := NewManager()
	h := NewHandleWithID(mgr, "y").OnFocus(func() { panic("boom") })
	h.Focus() // must not panic
	if !h.IsFocused() {
		t.Fatalf("expected focus to still apply despite a panicking callback")
	}
}

func TestUnregister_ClearsFocusAndGroupMembership(t *testing.T) {
	mgr := NewManager()
	h := NewHandleWithGroup(mgr, "z", "grp")
	h.Focus()
	h.Unregister()

	if mgr.IsFocused(h.ID()) {
		t.Fatalf("expected focus cleared after unregister")
	}
	if mgr.FocusGroup("grp") {
		t.Fatalf("expected group removed once empty")
	}
	// safe to call twice
	h.Unregister()
}
