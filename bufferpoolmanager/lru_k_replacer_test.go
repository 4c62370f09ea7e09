package bufferpoolmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceHistoryRecord(t *testing.T) {

	history := newReferenceHistory(3)
	assert.False(t, history.complete())

	history.record(1)
	history.record(4)
	assert.Equal(t, referenceHistory{4, 1, 0}, history)
	assert.Equal(t, uint64(4), history.mostRecent())
	assert.False(t, history.complete())

	history.record(9)
	history.record(10)
	assert.Equal(t, referenceHistory{10, 9, 4}, history)
	assert.Equal(t, uint64(4), history.kth())
	assert.True(t, history.complete())

	history.reset()
	assert.Equal(t, referenceHistory{0, 0, 0}, history)
}

func newLRUKPool(t *testing.T, disk *fakeDisk, numFrames int, k int, retention int) (*BufferPoolManager, *LRUKReplacer) {

	opts := DefaultOptions()
	opts.NumFrames = numFrames
	opts.Strategy = LRU_K
	opts.K = k
	opts.HistoryRetention = retention

	pool, err := NewBufferPoolManagerWithDisk(disk, opts)
	require.NoError(t, err)

	replacer, ok := pool.replacer.(*LRUKReplacer)
	require.True(t, ok)

	return pool, replacer
}

func pinUnpin(t *testing.T, pool *BufferPoolManager, pageNums ...PageNumber) {

	for _, pageNum := range pageNums {
		handle, err := pool.PinPage(pageNum)
		require.NoError(t, err, "pin page %d", pageNum)
		require.NoError(t, pool.UnpinPage(handle), "unpin page %d", pageNum)
	}
}

func historyOf(t *testing.T, pool *BufferPoolManager, replacer *LRUKReplacer, pageNum PageNumber) referenceHistory {

	frame, ok := pool.directory.lookup(pageNum)
	require.True(t, ok, "page %d not resident", pageNum)

	return replacer.histories[frame.frameId]
}

func TestLRUKHistoryIsPerResidency(t *testing.T) {

	pool, replacer := newLRUKPool(t, newFakeDisk(4), 1, 2, 0)
	defer pool.Shutdown()

	pinUnpin(t, pool, 1, 1)
	assert.Equal(t, referenceHistory{2, 1}, historyOf(t, pool, replacer, 1))

	pinUnpin(t, pool, 2, 1)
	assert.Equal(t, referenceHistory{4, 0}, historyOf(t, pool, replacer, 1))
}

func TestLRUKRetainedHistory(t *testing.T) {

	pool, replacer := newLRUKPool(t, newFakeDisk(4), 1, 2, 8)
	defer pool.Shutdown()

	pinUnpin(t, pool, 1, 1)

	// evicting page 1 keeps its two references.
	pinUnpin(t, pool, 2)
	pinUnpin(t, pool, 1)

	assert.Equal(t, referenceHistory{4, 2}, historyOf(t, pool, replacer, 1))
}

// loadThenReload leaves page 1 back in frame 1 after an eviction, with page 3 in frame 0
// referenced after page 1 came back.
func loadThenReload(t *testing.T, pool *BufferPoolManager) {

	pinUnpin(t, pool, 1, 1, 1)

	handle, err := pool.PinPage(2)
	require.NoError(t, err)

	// frame 1 is pinned, page 1 has to go.
	pinUnpin(t, pool, 3)
	require.NoError(t, pool.UnpinPage(handle))

	pinUnpin(t, pool, 1, 3)
	require.Equal(t, []PageNumber{3, 1}, pool.FrameContents())
}

func TestLRUKRetentionChangesVictim(t *testing.T) {

	pool, replacer := newLRUKPool(t, newFakeDisk(8), 2, 3, 8)
	defer pool.Shutdown()

	loadThenReload(t, pool)
	assert.Equal(t, referenceHistory{6, 3, 2}, historyOf(t, pool, replacer, 1))

	// page 1 has a complete history again, page 3 does not.
	pinUnpin(t, pool, 4)
	assert.Equal(t, []PageNumber{4, 1}, pool.FrameContents())
}

func TestLRUKWithoutRetention(t *testing.T) {

	pool, replacer := newLRUKPool(t, newFakeDisk(8), 2, 3, 0)
	defer pool.Shutdown()

	loadThenReload(t, pool)
	assert.Equal(t, referenceHistory{6, 0, 0}, historyOf(t, pool, replacer, 1))

	// both histories are incomplete, page 1 was referenced less recently.
	pinUnpin(t, pool, 4)
	assert.Equal(t, []PageNumber{3, 4}, pool.FrameContents())
}

func TestLRUKSkipsPinnedFrames(t *testing.T) {

	pool, _ := newLRUKPool(t, newFakeDisk(4), 2, 2, 0)
	defer pool.Shutdown()

	handle, err := pool.PinPage(1)
	require.NoError(t, err)

	pinUnpin(t, pool, 2, 2)

	// page 1 has the infinite distance but is pinned.
	pinUnpin(t, pool, 3)
	assert.Equal(t, []PageNumber{1, 3}, pool.FrameContents())

	require.NoError(t, pool.UnpinPage(handle))
}
