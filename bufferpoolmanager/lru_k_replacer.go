package bufferpoolmanager

import "log/slog"

// LRUKReplacer evicts the frame whose K-th most recent reference lies furthest in the past.
//
// A frame with fewer than K references has an infinite backward K-distance and is evicted
// before any frame with a complete history. Among those, the one whose most recent reference
// is oldest goes first, which degrades to plain LRU while the pool is cold.
type LRUKReplacer struct {
	dir *frameDirectory
	k   int

	// history of the page held by each frame, indexed by frame ID.
	histories []referenceHistory

	// nil unless HistoryRetention > 0.
	retained *historyCache
}

func newLRUKReplacer(dir *frameDirectory, k int, retention int, logger *slog.Logger) (*LRUKReplacer, error) {

	replacer := &LRUKReplacer{
		dir:       dir,
		k:         k,
		histories: make([]referenceHistory, dir.capacity()),
	}

	for i := range replacer.histories {
		replacer.histories[i] = newReferenceHistory(k)
	}

	if retention > 0 {
		retained, err := newHistoryCache(retention, logger)
		if err != nil {
			return nil, err
		}
		replacer.retained = retained
	}
	return replacer, nil
}

func (replacer *LRUKReplacer) strategy() ReplacementStrategy {
	return LRU_K
}

func (replacer *LRUKReplacer) accessed(frameId FrameID, now uint64) {
	replacer.histories[frameId].record(now)
}

func (replacer *LRUKReplacer) installed(frameId FrameID, pageNum PageNumber, now uint64) {

	history := replacer.histories[frameId]
	history.reset()

	if replacer.retained != nil {
		replacer.retained.restore(pageNum, history)
	}

	history.record(now)

	// keeps unused frames after the resident ones.
	replacer.dir.order.moveToFront(frameId)
}

func (replacer *LRUKReplacer) victim(now uint64) (FrameID, bool) {

	victim := INVALID_FRAME_ID
	victimComplete := true
	var victimTime uint64

	for frameId := replacer.dir.order.tail; frameId != INVALID_FRAME_ID; frameId = replacer.dir.order.prev[frameId] {

		if !replacer.dir.evictable(frameId) {
			continue
		}

		history := replacer.histories[frameId]

		if history.complete() {

			// any incomplete history wins over a complete one.
			if !victimComplete {
				continue
			}

			// largest backward K-distance, now - kth, is the smallest kth.
			if victim == INVALID_FRAME_ID || history.kth() < victimTime {
				victim, victimTime = frameId, history.kth()
			}
			continue
		}

		if victimComplete || history.mostRecent() < victimTime {
			victim, victimTime, victimComplete = frameId, history.mostRecent(), false
		}
	}

	return victim, victim != INVALID_FRAME_ID
}

func (replacer *LRUKReplacer) evicted(frameId FrameID, pageNum PageNumber) {

	history := replacer.histories[frameId]

	if replacer.retained != nil {
		replacer.retained.retain(pageNum, history)
	}
	history.reset()
}

func (replacer *LRUKReplacer) close() {

	if replacer.retained != nil {
		replacer.retained.close()
	}
}
