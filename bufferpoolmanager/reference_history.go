package bufferpoolmanager

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/ristretto/v2"
)

// referenceHistory holds the logical times of the K most recent references to a page,
// most recent first. 0 means the reference never happened, the pool clock starts at 1.
type referenceHistory []uint64

func newReferenceHistory(k int) referenceHistory {
	return make(referenceHistory, k)
}

// record shifts the history by one and stores now as the most recent reference,
// dropping the oldest entry.
func (history referenceHistory) record(now uint64) {

	copy(history[1:], history[:len(history)-1])
	history[0] = now
}

func (history referenceHistory) reset() {
	clear(history)
}

func (history referenceHistory) mostRecent() uint64 {
	return history[0]
}

// kth returns the time of the K-th most recent reference, 0 when the page has fewer than K references.
func (history referenceHistory) kth() uint64 {
	return history[len(history)-1]
}

func (history referenceHistory) complete() bool {
	return history.kth() != 0
}

// historyCache remembers the reference history of evicted pages.
// Admission and eviction are left to ristretto, cost is one per page.
type historyCache struct {
	cache  *ristretto.Cache[int64, []uint64]
	logger *slog.Logger
}

func newHistoryCache(capacity int, logger *slog.Logger) (*historyCache, error) {

	cache, err := ristretto.NewCache(&ristretto.Config[int64, []uint64]{
		NumCounters:        int64(capacity) * 10,
		MaxCost:            int64(capacity),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})

	if err != nil {
		logger.Error("Failed to create history cache", "capacity", capacity, "error", err.Error(), "function", "newHistoryCache", "at", "historyCache")
		return nil, fmt.Errorf("%w: history cache: %v", ErrInvalidConfiguration, err)
	}

	return &historyCache{cache: cache, logger: logger}, nil
}

// retain stores a copy of the history of pageNum.
func (hc *historyCache) retain(pageNum PageNumber, history referenceHistory) {

	saved := make([]uint64, len(history))
	copy(saved, history)

	if !hc.cache.Set(int64(pageNum), saved, 1) {
		hc.logger.Debug("History of evicted page dropped", "pageId", pageNum, "function", "retain", "at", "historyCache")
		return
	}

	// Set is asynchronous, wait so the page can be faulted back in immediately.
	hc.cache.Wait()
}

// restore copies the retained history of pageNum into history.
func (hc *historyCache) restore(pageNum PageNumber, history referenceHistory) bool {

	saved, ok := hc.cache.Get(int64(pageNum))
	if !ok || len(saved) != len(history) {
		return false
	}

	copy(history, saved)
	hc.cache.Del(int64(pageNum))
	return true
}

func (hc *historyCache) close() {
	hc.cache.Close()
}
