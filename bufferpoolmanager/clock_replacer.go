package bufferpoolmanager

// ClockReplacer gives every frame a second chance. A hit sets the frame's reference bit,
// loading a page leaves it clear. The hand walks the order list from the tail toward the
// head and wraps around, clearing set bits until it finds an unpinned frame whose bit is clear.
type ClockReplacer struct {
	dir        *frameDirectory
	referenced []bool
	hand       FrameID
}

func newClockReplacer(dir *frameDirectory) *ClockReplacer {

	return &ClockReplacer{
		dir:        dir,
		referenced: make([]bool, dir.capacity()),
		hand:       INVALID_FRAME_ID,
	}
}

func (replacer *ClockReplacer) strategy() ReplacementStrategy {
	return CLOCK
}

func (replacer *ClockReplacer) accessed(frameId FrameID, now uint64) {
	replacer.referenced[frameId] = true
}

func (replacer *ClockReplacer) installed(frameId FrameID, pageNum PageNumber, now uint64) {

	replacer.referenced[frameId] = false
	replacer.dir.order.moveToFront(frameId)
}

func (replacer *ClockReplacer) victim(now uint64) (FrameID, bool) {

	order := replacer.dir.order

	if replacer.hand == INVALID_FRAME_ID {
		replacer.hand = order.tail
	}

	// two sweeps clear every reference bit, a third would find nothing new.
	for range 2 * replacer.dir.capacity() {

		frameId := replacer.hand
		replacer.hand = order.towardHead(frameId)

		if !replacer.dir.evictable(frameId) {
			continue
		}

		if replacer.referenced[frameId] {
			replacer.referenced[frameId] = false
			continue
		}
		return frameId, true
	}
	return INVALID_FRAME_ID, false
}

func (replacer *ClockReplacer) evicted(frameId FrameID, pageNum PageNumber) {
	replacer.referenced[frameId] = false
}

func (replacer *ClockReplacer) close() {}
