package bufferpoolmanager

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type GuardTestSuite struct {
	suite.Suite
	disk       *fakeDisk
	bufferPool *BufferPoolManager
}

func (gs *GuardTestSuite) SetupTest() {

	gs.disk = newFakeDisk(4)

	opts := DefaultOptions()
	opts.NumFrames = 2

	bpm, err := NewBufferPoolManagerWithDisk(gs.disk, opts)
	gs.Require().NoError(err)

	gs.bufferPool = bpm
}

func (gs *GuardTestSuite) TearDownTest() {
	gs.Assert().NoError(gs.bufferPool.Shutdown())
}

func (gs *GuardTestSuite) TestWriteGuardDone() {

	guard, err := gs.bufferPool.NewWriteGuard(1)
	gs.Require().NoError(err)

	gs.Assert().True(guard.IsActive())
	gs.Assert().Equal(PageNumber(1), guard.GetPageNum())
	gs.Assert().True(checkPage(pageStart(1), guard.GetPageData()))
	gs.Assert().Equal([]int{1, 0}, gs.bufferPool.FixCounts())

	gs.Assert().True(guard.Done())
	gs.Assert().False(guard.Done())

	gs.Assert().False(guard.IsActive())
	gs.Assert().Equal(NO_PAGE, guard.GetPageNum())
	gs.Assert().Nil(guard.GetPageData())
	gs.Assert().False(guard.SetDirtyFlag())
	gs.Assert().Equal([]int{0, 0}, gs.bufferPool.FixCounts())
}

func (gs *GuardTestSuite) TestWriteGuardSetDirtyFlag() {

	guard, err := gs.bufferPool.NewWriteGuard(0)
	gs.Require().NoError(err)

	copy(guard.GetPageData(), createPage(123))
	gs.Assert().True(guard.SetDirtyFlag())
	gs.Assert().Equal([]bool{true, false}, gs.bufferPool.DirtyFlags())
	gs.Assert().True(guard.Done())

	gs.Require().NoError(gs.bufferPool.FlushAll())
	gs.Assert().True(checkPage(123, gs.disk.pages[0]))
}

func (gs *GuardTestSuite) TestReadGuardDone() {

	first, err := gs.bufferPool.NewReadGuard(2)
	gs.Require().NoError(err)

	// read guards share the latch.
	second, err := gs.bufferPool.NewReadGuard(2)
	gs.Require().NoError(err)

	gs.Assert().Equal(PageNumber(2), first.GetPageNum())
	gs.Assert().True(checkPage(pageStart(2), second.GetPageData()))
	gs.Assert().Equal([]int{2, 0}, gs.bufferPool.FixCounts())

	gs.Assert().True(first.Done())
	gs.Assert().False(first.Done())
	gs.Assert().Nil(first.GetPageData())

	gs.Assert().True(second.Done())
	gs.Assert().Equal([]int{0, 0}, gs.bufferPool.FixCounts())
}

func (gs *GuardTestSuite) TestGuardOnFullPool() {

	first, err := gs.bufferPool.NewWriteGuard(0)
	gs.Require().NoError(err)
	second, err := gs.bufferPool.NewReadGuard(1)
	gs.Require().NoError(err)

	_, err = gs.bufferPool.NewWriteGuard(2)
	gs.Assert().ErrorIs(err, ErrNoFreeFrame)

	_, err = gs.bufferPool.NewReadGuard(3)
	gs.Assert().ErrorIs(err, ErrNoFreeFrame)

	gs.Assert().True(first.Done())
	gs.Assert().True(second.Done())
}

func (gs *GuardTestSuite) TestWriteGuardsSerializeWriters() {

	const workers = 8
	const increments = 50

	var wg sync.WaitGroup

	for range workers {

		wg.Add(1)
		go func() {
			defer wg.Done()

			for range increments {

				guard, err := gs.bufferPool.NewWriteGuard(3)
				if err != nil {
					gs.T().Error(err)
					return
				}

				data := guard.GetPageData()
				counter := binary.LittleEndian.Uint64(data[:8])
				binary.LittleEndian.PutUint64(data[:8], counter+1)

				guard.SetDirtyFlag()
				guard.Done()
			}
		}()
	}
	wg.Wait()

	guard, err := gs.bufferPool.NewReadGuard(3)
	gs.Require().NoError(err)

	gs.Assert().Equal(uint64(pageStart(3)+workers*increments), binary.LittleEndian.Uint64(guard.GetPageData()[:8]))
	gs.Assert().True(guard.Done())
}

func TestGuards(t *testing.T) {
	suite.Run(t, new(GuardTestSuite))
}
