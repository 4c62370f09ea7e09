package bufferpoolmanager

// WriteGuard is used to provide exclusive write access to a page stored in a frame in the buffer pool manager.
type WriteGuard struct {

	// active is used to prevent users from using a write guard once its Done function has been called.
	active     bool
	handle     *PageHandle
	bufferPool *BufferPoolManager
}

// NewWriteGuard pins pageNum and returns an active write guard.
// All guards corresponding to a page share a RW lock.
func (bufferPool *BufferPoolManager) NewWriteGuard(pageNum PageNumber) (*WriteGuard, error) {

	handle, err := bufferPool.PinPage(pageNum)

	if err != nil {
		bufferPool.logger.Error("Failed to fetch page for write guard", "pageId", pageNum, "error", err.Error(), "function", "NewWriteGuard", "at", "WriteGuard")
		return nil, err
	}

	handle.frame.latch.Lock()

	guard := &WriteGuard{
		active:     true,
		handle:     handle,
		bufferPool: bufferPool,
	}

	return guard, nil
}

// GetPageNum returns the page number of the page corresponding to the write guard.
func (guard *WriteGuard) GetPageNum() PageNumber {

	if !guard.active {
		return NO_PAGE
	}

	return guard.handle.pageNum
}

func (guard *WriteGuard) GetPageData() []byte {

	if !guard.active {
		return nil
	}
	return guard.handle.Data()
}

func (guard *WriteGuard) IsActive() bool {
	return guard.active
}

// SetDirtyFlag is used to set the dirty flag of the frame in the buffer pool manager
// where the page is stored.
func (guard *WriteGuard) SetDirtyFlag() bool {

	if !guard.active {
		return false
	}

	return guard.bufferPool.MarkDirty(guard.handle) == nil
}

// Done is used to decrease the pin count of the page, and ensure the exclusive lock is released.
// A guard becomes inactive and cannot be reused if this function returns true.
func (guard *WriteGuard) Done() bool {

	if !guard.active {
		return false
	}
	_ = guard.bufferPool.UnpinPage(guard.handle)

	guard.handle.frame.latch.Unlock()

	guard.handle = nil
	guard.bufferPool = nil
	guard.active = false

	return true
}
