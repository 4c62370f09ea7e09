package bufferpoolmanager

// ReadGuard is used to provide shared read access to a page stored in a frame in the buffer pool manager.
type ReadGuard struct {
	active     bool
	handle     *PageHandle
	bufferPool *BufferPoolManager
}

// NewReadGuard pins pageNum and returns an active read guard.
// All read guards corresponding to a page share a RW lock.
func (bufferPool *BufferPoolManager) NewReadGuard(pageNum PageNumber) (*ReadGuard, error) {

	handle, err := bufferPool.PinPage(pageNum)

	if err != nil {
		return nil, err
	}

	handle.frame.latch.RLock()

	guard := &ReadGuard{
		active:     true,
		handle:     handle,
		bufferPool: bufferPool,
	}

	return guard, nil
}

func (guard *ReadGuard) GetPageNum() PageNumber {

	if !guard.active {
		return NO_PAGE
	}
	return guard.handle.pageNum
}

// GetPageData returns the page bytes. Callers must not modify them.
func (guard *ReadGuard) GetPageData() []byte {

	if !guard.active {
		return nil
	}
	return guard.handle.Data()
}

// Done is used to decrease the pin count of the page, and release the shared lock.
// A guard becomes inactive and cannot be reused if this function returns true.
func (guard *ReadGuard) Done() bool {

	if !guard.active {
		return false
	}
	_ = guard.bufferPool.UnpinPage(guard.handle)

	guard.handle.frame.latch.RUnlock()

	guard.handle = nil
	guard.bufferPool = nil
	guard.active = false

	return true
}
