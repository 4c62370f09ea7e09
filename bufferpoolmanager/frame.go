package bufferpoolmanager

import (
	"sync"

	"github.com/shantanoo-sinha/CS-525/pagefile"
)

const (
	PAGE_SIZE = pagefile.PAGE_SIZE
	DIRTY     = true
	CLEAN     = false
)

type PageNumber = pagefile.PageNumber

const NO_PAGE = pagefile.NO_PAGE

type FrameID int

const INVALID_FRAME_ID FrameID = -1

// Frame is one physical slot of the buffer pool.
type Frame struct {
	frameId FrameID
	pageNum PageNumber
	data    []byte

	dirty    bool
	pinCount int

	// generation is incremented every time the frame is handed to another page,
	// handles carrying an older generation are stale.
	generation uint64

	// latch is shared by the read and write guards of the resident page.
	latch sync.RWMutex
}

func newFrame(frameId FrameID) *Frame {

	return &Frame{
		frameId:  frameId,
		pageNum:  NO_PAGE,
		data:     pagefile.NewPageBuffer(),
		dirty:    CLEAN,
		pinCount: 0,
	}
}

func (frame *Frame) occupied() bool {
	return frame.pageNum != NO_PAGE
}
