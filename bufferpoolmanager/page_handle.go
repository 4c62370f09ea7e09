package bufferpoolmanager

// PageHandle refers to a page pinned in the buffer pool.
// The handle stays usable while its page remains in the same frame. Once the frame is
// given to another page, or the pool shuts down, every call on the handle fails.
type PageHandle struct {
	pageNum    PageNumber
	frame      *Frame
	generation uint64
	pool       *BufferPoolManager
}

func (pool *BufferPoolManager) newPageHandle(frame *Frame) *PageHandle {

	return &PageHandle{
		pageNum:    frame.pageNum,
		frame:      frame,
		generation: frame.generation,
		pool:       pool,
	}
}

func (handle *PageHandle) PageNum() PageNumber {
	return handle.pageNum
}

// Data returns the frame buffer holding the page, nil when the handle is stale.
// The buffer is shared with the pool, not copied.
func (handle *PageHandle) Data() []byte {

	handle.pool.mutex.Lock()
	defer handle.pool.mutex.Unlock()

	frame, err := handle.pool.resolve(handle)
	if err != nil {
		return nil
	}
	return frame.data
}

// resolve returns the frame behind the handle. Must be called with the pool mutex held.
func (pool *BufferPoolManager) resolve(handle *PageHandle) (*Frame, error) {

	if pool.closed {
		return nil, ErrInvalidPool
	}

	if handle == nil || handle.pool != pool {
		return nil, ErrPageNotResident
	}

	frame, ok := pool.directory.lookup(handle.pageNum)
	if !ok {
		return nil, ErrPageNotResident
	}

	if frame != handle.frame || frame.generation != handle.generation {
		return nil, ErrStaleHandle
	}
	return frame, nil
}
