package bufferpoolmanager

import (
	"fmt"
	"log/slog"
	"strings"
)

type ReplacementStrategy int

const (
	FIFO ReplacementStrategy = iota
	LRU
	LRU_K
	CLOCK
)

func (strategy ReplacementStrategy) String() string {

	switch strategy {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	case LRU_K:
		return "LRU-K"
	case CLOCK:
		return "CLOCK"
	}
	return fmt.Sprintf("ReplacementStrategy(%d)", int(strategy))
}

// ParseReplacementStrategy maps a textual strategy name, as found in configuration files
// or command line flags, to a ReplacementStrategy. Matching ignores case.
func ParseReplacementStrategy(name string) (ReplacementStrategy, error) {

	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FIFO":
		return FIFO, nil
	case "LRU":
		return LRU, nil
	case "LRU-K", "LRU_K", "LRUK":
		return LRU_K, nil
	case "CLOCK":
		return CLOCK, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNonExistingStrategy, name)
}

// ShutdownPolicy decides what Shutdown does when frames are still pinned.
type ShutdownPolicy int

const (
	// FLUSH_PINNED flushes every dirty frame, pinned or not, and closes the pool.
	FLUSH_PINNED ShutdownPolicy = iota

	// FAIL_IF_PINNED refuses to shut down while any frame is pinned.
	FAIL_IF_PINNED
)

func (policy ShutdownPolicy) String() string {

	switch policy {
	case FLUSH_PINNED:
		return "FlushPinned"
	case FAIL_IF_PINNED:
		return "FailIfPinned"
	}
	return fmt.Sprintf("ShutdownPolicy(%d)", int(policy))
}

type Options struct {

	// NumFrames is the number of page frames allocated up front.
	NumFrames int

	Strategy ReplacementStrategy

	// K is the history depth used by LRU_K, ignored by the other strategies.
	K int

	// HistoryRetention is the number of evicted pages whose LRU-K reference history
	// is remembered, so that a page faulted back in resumes where it left off.
	// 0 disables retention.
	HistoryRetention int

	ShutdownPolicy ShutdownPolicy

	// DirectIO opens the page file with O_DIRECT.
	DirectIO bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func DefaultOptions() Options {

	return Options{
		NumFrames:        16,
		Strategy:         LRU,
		K:                2,
		HistoryRetention: 0,
		ShutdownPolicy:   FLUSH_PINNED,
		DirectIO:         false,
	}
}

// Validate reports ErrInvalidConfiguration or ErrNonExistingStrategy for unusable options.
func (opts Options) Validate() error {

	if opts.NumFrames <= 0 {
		return fmt.Errorf("%w: number of frames must be positive, got %d", ErrInvalidConfiguration, opts.NumFrames)
	}

	switch opts.Strategy {
	case FIFO, LRU, CLOCK:
	case LRU_K:
		if opts.K <= 0 {
			return fmt.Errorf("%w: LRU-K needs K > 0, got %d", ErrInvalidConfiguration, opts.K)
		}
	default:
		return fmt.Errorf("%w: %v", ErrNonExistingStrategy, opts.Strategy)
	}

	if opts.HistoryRetention < 0 {
		return fmt.Errorf("%w: history retention must not be negative, got %d", ErrInvalidConfiguration, opts.HistoryRetention)
	}

	if opts.ShutdownPolicy != FLUSH_PINNED && opts.ShutdownPolicy != FAIL_IF_PINNED {
		return fmt.Errorf("%w: unknown shutdown policy %v", ErrInvalidConfiguration, opts.ShutdownPolicy)
	}
	return nil
}

func (opts Options) logger() *slog.Logger {

	if opts.Logger == nil {
		return slog.Default()
	}
	return opts.Logger
}
