package bufferpoolmanager

// FIFOReplacer evicts the page that has been resident the longest.
// The head of the order list holds the newest page, hits do not reorder.
type FIFOReplacer struct {
	dir *frameDirectory
}

func newFIFOReplacer(dir *frameDirectory) *FIFOReplacer {
	return &FIFOReplacer{dir: dir}
}

func (replacer *FIFOReplacer) strategy() ReplacementStrategy {
	return FIFO
}

func (replacer *FIFOReplacer) accessed(frameId FrameID, now uint64) {}

func (replacer *FIFOReplacer) installed(frameId FrameID, pageNum PageNumber, now uint64) {
	replacer.dir.order.moveToFront(frameId)
}

func (replacer *FIFOReplacer) victim(now uint64) (FrameID, bool) {
	return tailVictim(replacer.dir)
}

func (replacer *FIFOReplacer) evicted(frameId FrameID, pageNum PageNumber) {}

func (replacer *FIFOReplacer) close() {}
