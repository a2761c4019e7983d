package checkpoint

import "errors"

// Sentinel errors returned by the diff codec and the differential
// checkpointer. Callers discriminate with errors.Is/errors.As rather than a
// single monolithic error type, matching the rest of this module.
var (
	// ErrIntegrity covers diff/apply and chain-reconstruction corruption:
	// header mismatches, chunk overruns, chain-length violations.
	ErrIntegrity = errors.New("checkpoint: integrity error")

	// ErrNotFound is returned when a checkpoint id is absent from both the
	// in-process cache and the inner store.
	ErrNotFound = errors.New("checkpoint: not found")

	// ErrSerialization covers state that cannot be encoded or decoded. States
	// are stored as raw bytes, so no function in this package returns it.
	ErrSerialization = errors.New("checkpoint: serialization error")
)
