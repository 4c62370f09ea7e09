package bufferpoolmanager

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// frameDirectory owns the frames and keeps the page table and the frame table
// inverse of each other for every occupied frame.
type frameDirectory struct {
	frames []*Frame

	// maps page numbers to the frame holding them, grows with the pages in use.
	pageTable *xsync.MapOf[PageNumber, FrameID]

	// maps frame IDs to the page they hold, NO_PAGE for unused frames.
	frameTable []PageNumber

	// replacement order shared by every strategy.
	order *frameList

	resident int
}

func newFrameDirectory(numFrames int) *frameDirectory {

	dir := &frameDirectory{
		frames:     make([]*Frame, numFrames),
		pageTable:  xsync.NewMapOfPresized[PageNumber, FrameID](numFrames),
		frameTable: make([]PageNumber, numFrames),
		order:      newFrameList(numFrames),
	}

	for i := range numFrames {
		dir.frames[i] = newFrame(FrameID(i))
		dir.frameTable[i] = NO_PAGE
	}
	return dir
}

func (dir *frameDirectory) capacity() int {
	return len(dir.frames)
}

func (dir *frameDirectory) full() bool {
	return dir.resident == len(dir.frames)
}

func (dir *frameDirectory) lookup(pageNum PageNumber) (*Frame, bool) {

	frameId, ok := dir.pageTable.Load(pageNum)
	if !ok {
		return nil, false
	}
	return dir.frames[frameId], true
}

// nextUnusedFrame returns the frame found numResident steps from the head of the order list.
// Installed frames are moved in front of it, so the unused ones follow the resident ones.
func (dir *frameDirectory) nextUnusedFrame() FrameID {
	return dir.order.nth(dir.resident)
}

// assign maps pageNum to frameId, unmapping the page the frame held before.
func (dir *frameDirectory) assign(frameId FrameID, pageNum PageNumber) {

	frame := dir.frames[frameId]

	if frame.occupied() {
		dir.pageTable.Delete(frame.pageNum)
	} else {
		dir.resident++
	}

	frame.pageNum = pageNum
	dir.frameTable[frameId] = pageNum
	dir.pageTable.Store(pageNum, frameId)
}

// evictable reports whether the frame holds a page and nobody has it pinned.
func (dir *frameDirectory) evictable(frameId FrameID) bool {

	frame := dir.frames[frameId]
	return frame.occupied() && frame.pinCount == 0
}
