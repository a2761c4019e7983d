package contextwindow

import "errors"

// ErrValidation is the sentinel for context-manager misconfiguration. No
// function in this package returns it: NewManager replaces a non-positive
// ReservedTokens or TokensPerMessageOverhead with its default instead.
var ErrValidation = errors.New("contextwindow: validation error")
