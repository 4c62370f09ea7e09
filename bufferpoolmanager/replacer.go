package bufferpoolmanager

import "log/slog"

// Replacer decides which resident frame is given up when a page is requested and
// every frame is occupied. Replacers read pin counts and reorder the directory's
// shared order list, they never touch page data.
type Replacer interface {
	strategy() ReplacementStrategy

	// accessed records a hit on a resident frame at logical time now.
	accessed(frameId FrameID, now uint64)

	// installed records that pageNum was loaded into frameId at logical time now.
	installed(frameId FrameID, pageNum PageNumber, now uint64)

	// victim selects an unpinned frame to evict, false if every frame is pinned.
	victim(now uint64) (FrameID, bool)

	// evicted records that pageNum left frameId.
	evicted(frameId FrameID, pageNum PageNumber)

	// close releases resources held by the replacer.
	close()
}

func newReplacer(opts Options, dir *frameDirectory, logger *slog.Logger) (Replacer, error) {

	switch opts.Strategy {
	case FIFO:
		return newFIFOReplacer(dir), nil
	case LRU:
		return newLRUReplacer(dir), nil
	case LRU_K:
		return newLRUKReplacer(dir, opts.K, opts.HistoryRetention, logger)
	case CLOCK:
		return newClockReplacer(dir), nil
	}
	return nil, ErrNonExistingStrategy
}

// tailVictim scans the order list from the tail toward the head and returns the first unpinned frame.
func tailVictim(dir *frameDirectory) (FrameID, bool) {

	for frameId := dir.order.tail; frameId != INVALID_FRAME_ID; frameId = dir.order.prev[frameId] {
		if dir.evictable(frameId) {
			return frameId, true
		}
	}
	return INVALID_FRAME_ID, false
}
