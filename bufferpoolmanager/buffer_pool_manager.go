package bufferpoolmanager

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shantanoo-sinha/CS-525/pagefile"
)

// BufferPoolManager caches the pages of one page file in a fixed number of frames.
// Every method takes the pool mutex, the bytes behind a PageHandle are not protected by it.
type BufferPoolManager struct {
	mutex *sync.Mutex

	disk      DiskManager
	directory *frameDirectory
	replacer  Replacer
	opts      Options

	// logical clock, incremented once per successful PinPage.
	clock uint64

	// pages are read here first and swapped into the frame once the read succeeded.
	scratch []byte

	numReadIO  int
	numWriteIO int
	hits       int
	misses     int
	evictions  int

	closed bool
	logger *slog.Logger
}

// BufferPoolStats is a point in time snapshot of the pool.
type BufferPoolStats struct {
	Capacity   int
	Resident   int
	Pinned     int
	Dirty      int
	Hits       int
	Misses     int
	Evictions  int
	NumReadIO  int
	NumWriteIO int
	Strategy   string
}

// NewBufferPoolManager opens the page file pageFileName and allocates opts.NumFrames empty frames.
func NewBufferPoolManager(pageFileName string, opts Options) (*BufferPoolManager, error) {

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := opts.logger()

	pageFile, err := pagefile.Open(pageFileName, pagefile.Options{DirectIO: opts.DirectIO, Logger: logger})
	if err != nil {
		logger.Error("Failed to open page file", "name", pageFileName, "error", err.Error(), "function", "NewBufferPoolManager", "at", "BufferPoolManager")
		return nil, err
	}

	pool, err := NewBufferPoolManagerWithDisk(pageFile, opts)
	if err != nil {
		return nil, errors.Join(err, pageFile.Close())
	}
	return pool, nil
}

// NewBufferPoolManagerWithDisk builds a pool on top of an already opened DiskManager.
// The pool takes ownership of disk and closes it on Shutdown.
func NewBufferPoolManagerWithDisk(disk DiskManager, opts Options) (*BufferPoolManager, error) {

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := opts.logger()
	directory := newFrameDirectory(opts.NumFrames)

	replacer, err := newReplacer(opts, directory, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Initialized buffer pool", "name", disk.Name(), "numFrames", opts.NumFrames, "strategy", opts.Strategy.String(), "function", "NewBufferPoolManagerWithDisk", "at", "BufferPoolManager")

	return &BufferPoolManager{
		mutex:     &sync.Mutex{},
		disk:      disk,
		directory: directory,
		replacer:  replacer,
		opts:      opts,
		scratch:   pagefile.NewPageBuffer(),
		logger:    logger,
	}, nil
}

// PinPage returns a handle to pageNum, loading the page from disk if it is not resident.
// The pin count of the page is incremented, the caller must call UnpinPage once per PinPage.
func (pool *BufferPoolManager) PinPage(pageNum PageNumber) (*PageHandle, error) {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	if pool.closed {
		return nil, ErrInvalidPool
	}

	if pageNum < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageNumber, pageNum)
	}

	now := pool.clock + 1

	// check if page is already resident.
	if frame, ok := pool.directory.lookup(pageNum); ok {

		frame.pinCount++
		pool.clock = now
		pool.hits++
		pool.replacer.accessed(frame.frameId, now)

		return pool.newPageHandle(frame), nil
	}

	frame, err := pool.fetchPage(pageNum, now)
	if err != nil {
		return nil, err
	}

	pool.clock = now
	pool.misses++

	return pool.newPageHandle(frame), nil
}

// fetchPage loads pageNum into a free frame or a victim frame. If any step fails the pool
// is left as it was, except that a victim whose write back succeeded stays resident and clean.
func (pool *BufferPoolManager) fetchPage(pageNum PageNumber, now uint64) (*Frame, error) {

	frameId, err := pool.selectFrame(now)
	if err != nil {
		return nil, err
	}

	frame := pool.directory.frames[frameId]

	// write back the victim before its frame is overwritten.
	if frame.occupied() && frame.dirty {

		pool.logger.Debug("Writing back dirty victim", "pageId", frame.pageNum, "frameId", frameId, "function", "fetchPage", "at", "BufferPoolManager")

		if err := pool.disk.WriteBlock(frame.pageNum, frame.data); err != nil {
			pool.logger.Error("Failed to write back victim", "pageId", frame.pageNum, "error", err.Error(), "function", "fetchPage", "at", "BufferPoolManager")
			return nil, fmt.Errorf("write back page %d: %w", frame.pageNum, err)
		}
		pool.numWriteIO++
		frame.dirty = CLEAN
	}

	if err := pool.disk.EnsureCapacity(int(pageNum) + 1); err != nil {
		pool.logger.Error("Failed to grow page file", "pageId", pageNum, "error", err.Error(), "function", "fetchPage", "at", "BufferPoolManager")
		return nil, fmt.Errorf("grow file to page %d: %w", pageNum, err)
	}

	if err := pool.disk.ReadBlock(pageNum, pool.scratch); err != nil {
		pool.logger.Error("Failed to read page", "pageId", pageNum, "error", err.Error(), "function", "fetchPage", "at", "BufferPoolManager")
		return nil, fmt.Errorf("read page %d: %w", pageNum, err)
	}
	pool.numReadIO++

	frame.data, pool.scratch = pool.scratch, frame.data

	if frame.occupied() {
		pool.logger.Debug("Evicted page", "pageId", frame.pageNum, "frameId", frameId, "function", "fetchPage", "at", "BufferPoolManager")
		pool.replacer.evicted(frameId, frame.pageNum)
		pool.evictions++
	}

	pool.directory.assign(frameId, pageNum)

	frame.pinCount = 1
	frame.dirty = CLEAN
	frame.generation++

	pool.replacer.installed(frameId, pageNum, now)

	return frame, nil
}

// selectFrame returns the next unused frame while the pool is filling up, a victim afterwards.
func (pool *BufferPoolManager) selectFrame(now uint64) (FrameID, error) {

	if !pool.directory.full() {
		return pool.directory.nextUnusedFrame(), nil
	}

	frameId, ok := pool.replacer.victim(now)
	if !ok {
		pool.logger.Warn("Every frame is pinned", "numFrames", pool.directory.capacity(), "function", "selectFrame", "at", "BufferPoolManager")
		return INVALID_FRAME_ID, ErrNoFreeFrame
	}
	return frameId, nil
}

// UnpinPage decrements the pin count of the page behind handle.
// Unpinning a page that is not pinned fails with ErrPageNotResident.
func (pool *BufferPoolManager) UnpinPage(handle *PageHandle) error {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	frame, err := pool.resolve(handle)
	if err != nil {
		return err
	}

	if frame.pinCount == 0 {
		return fmt.Errorf("%w: page %d is not pinned", ErrPageNotResident, frame.pageNum)
	}

	frame.pinCount--
	return nil
}

// MarkDirty flags the page behind handle as modified, it is written back before its frame is reused.
func (pool *BufferPoolManager) MarkDirty(handle *PageHandle) error {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	frame, err := pool.resolve(handle)
	if err != nil {
		return err
	}

	frame.dirty = DIRTY
	return nil
}

// ForcePage writes the page behind handle to disk whether or not it is dirty.
func (pool *BufferPoolManager) ForcePage(handle *PageHandle) error {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	frame, err := pool.resolve(handle)
	if err != nil {
		return err
	}
	return pool.writeFrame(frame)
}

func (pool *BufferPoolManager) writeFrame(frame *Frame) error {

	if err := pool.disk.WriteBlock(frame.pageNum, frame.data); err != nil {
		pool.logger.Error("Failed to write page", "pageId", frame.pageNum, "error", err.Error(), "function", "writeFrame", "at", "BufferPoolManager")
		return fmt.Errorf("write page %d: %w", frame.pageNum, err)
	}

	pool.numWriteIO++
	frame.dirty = CLEAN
	return nil
}

// FlushAll writes every dirty frame to disk, pinned or not.
func (pool *BufferPoolManager) FlushAll() error {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	if pool.closed {
		return ErrInvalidPool
	}
	return pool.flushAll()
}

func (pool *BufferPoolManager) flushAll() error {

	for _, frame := range pool.directory.frames {

		if !frame.occupied() || !frame.dirty {
			continue
		}

		if err := pool.writeFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown flushes every dirty frame, closes the page file and releases the frames.
// Handles obtained from the pool become invalid. With FAIL_IF_PINNED, Shutdown returns
// ErrPagesPinned and leaves the pool open while any page is pinned.
func (pool *BufferPoolManager) Shutdown() error {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	if pool.closed {
		return ErrInvalidPool
	}

	if pool.opts.ShutdownPolicy == FAIL_IF_PINNED {
		if pinned := pool.pinnedFrames(); pinned > 0 {
			pool.logger.Warn("Refusing to shut down with pinned pages", "pinned", pinned, "function", "Shutdown", "at", "BufferPoolManager")
			return fmt.Errorf("%w: %d frames", ErrPagesPinned, pinned)
		}
	}

	if err := pool.flushAll(); err != nil {
		return err
	}

	pool.replacer.close()

	if err := pool.disk.Close(); err != nil {
		pool.logger.Error("Failed to close page file", "name", pool.disk.Name(), "error", err.Error(), "function", "Shutdown", "at", "BufferPoolManager")
		return err
	}

	for _, frame := range pool.directory.frames {
		frame.generation++
		frame.data = nil
	}
	pool.scratch = nil
	pool.closed = true

	pool.logger.Info("Shut down buffer pool", "name", pool.disk.Name(), "numReadIO", pool.numReadIO, "numWriteIO", pool.numWriteIO, "function", "Shutdown", "at", "BufferPoolManager")

	return nil
}

func (pool *BufferPoolManager) pinnedFrames() int {

	pinned := 0
	for _, frame := range pool.directory.frames {
		if frame.pinCount > 0 {
			pinned++
		}
	}
	return pinned
}

// ------------------------
// Statistics

// FrameContents returns the page held by every frame, NO_PAGE for unused frames.
func (pool *BufferPoolManager) FrameContents() []PageNumber {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	contents := make([]PageNumber, len(pool.directory.frameTable))
	copy(contents, pool.directory.frameTable)
	return contents
}

func (pool *BufferPoolManager) DirtyFlags() []bool {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	flags := make([]bool, len(pool.directory.frames))
	for i, frame := range pool.directory.frames {
		flags[i] = frame.dirty
	}
	return flags
}

func (pool *BufferPoolManager) FixCounts() []int {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	counts := make([]int, len(pool.directory.frames))
	for i, frame := range pool.directory.frames {
		counts[i] = frame.pinCount
	}
	return counts
}

func (pool *BufferPoolManager) NumReadIO() int {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	return pool.numReadIO
}

func (pool *BufferPoolManager) NumWriteIO() int {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	return pool.numWriteIO
}

func (pool *BufferPoolManager) Stats() BufferPoolStats {

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	stats := BufferPoolStats{
		Capacity:   pool.directory.capacity(),
		Resident:   pool.directory.resident,
		Pinned:     pool.pinnedFrames(),
		Hits:       pool.hits,
		Misses:     pool.misses,
		Evictions:  pool.evictions,
		NumReadIO:  pool.numReadIO,
		NumWriteIO: pool.numWriteIO,
		Strategy:   pool.replacer.strategy().String(),
	}

	for _, frame := range pool.directory.frames {
		if frame.dirty {
			stats.Dirty++
		}
	}
	return stats
}
