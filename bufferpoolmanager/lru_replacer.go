package bufferpoolmanager

// LRUReplacer keeps the order list sorted by recency, the most recently accessed frame at the head.
type LRUReplacer struct {
	dir *frameDirectory
}

func newLRUReplacer(dir *frameDirectory) *LRUReplacer {
	return &LRUReplacer{dir: dir}
}

func (replacer *LRUReplacer) strategy() ReplacementStrategy {
	return LRU
}

// moves the frame to the front of the list, it becomes the most recently accessed frame.
func (replacer *LRUReplacer) accessed(frameId FrameID, now uint64) {
	replacer.dir.order.moveToFront(frameId)
}

func (replacer *LRUReplacer) installed(frameId FrameID, pageNum PageNumber, now uint64) {
	replacer.dir.order.moveToFront(frameId)
}

// returns the unpinned frame closest to the back of the list, which is the least recently accessed one.
func (replacer *LRUReplacer) victim(now uint64) (FrameID, bool) {
	return tailVictim(replacer.dir)
}

func (replacer *LRUReplacer) evicted(frameId FrameID, pageNum PageNumber) {}

func (replacer *LRUReplacer) close() {}
