package checkpoint

// DifferentialConfig tunes how often full bases are written versus diffs,
// and how long a diff chain is allowed to grow before reconstruction is
// refused.
type DifferentialConfig struct {
	// BaseInterval: every Nth save on a thread is stored as a full base
	// regardless of diffability.
	BaseInterval int
	// MaxChainLength bounds how many diff hops load() will walk before
	// raising an integrity error.
	MaxChainLength int
	// MinDiffSize is the smallest new-state size a diff will be attempted
	// for; see CreateDiff.
	MinDiffSize int
}

// DefaultDifferentialConfig returns the baseline tuning: a full base every
// 10 saves, chains capped at 20 hops, diffs attempted for states of 1KiB or
// more.
func DefaultDifferentialConfig() DifferentialConfig {
	return DifferentialConfig{
		BaseInterval:   10,
		MaxChainLength: 20,
		MinDiffSize:    DefaultMinDiffSize,
	}
}

// NewMemoryOptimizedConfig favors fewer full bases (more diffing) at the
// cost of longer reconstruction chains — appropriate when storage is the
// scarce resource and checkpoints are read back rarely.
func NewMemoryOptimizedConfig() DifferentialConfig {
	return DifferentialConfig{
		BaseInterval:   20,
		MaxChainLength: 50,
		MinDiffSize:    512,
	}
}

// NewSpeedOptimizedConfig favors frequent full bases and short chains,
// trading storage for faster, shallower reconstruction — appropriate when
// load() latency matters more than disk/cache footprint.
func NewSpeedOptimizedConfig() DifferentialConfig {
	return DifferentialConfig{
		BaseInterval:   5,
		MaxChainLength: 10,
		MinDiffSize:    2048,
	}
}
