package bufferpoolmanager

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/shantanoo-sinha/CS-525/pagefile"
)

func createPage(start int) []byte {

	page := make([]byte, PAGE_SIZE)

	pointer := 0
	for i := 0; i < PAGE_SIZE/8; i++ {
		binary.LittleEndian.PutUint64(page[pointer:pointer+8], uint64(start+i))
		pointer += 8
	}

	return page
}

func checkPage(start int, page []byte) bool {

	if len(page) != PAGE_SIZE {
		return false
	}

	pointer := 0

	for i := 0; i < PAGE_SIZE/8; i++ {
		if uint64(i+start) != binary.LittleEndian.Uint64(page[pointer:pointer+8]) {
			return false
		}
		pointer += 8
	}
	return true
}

// pageStart is the first value written to page pageNum by fileSetup.
func pageStart(pageNum PageNumber) int {
	return int(pageNum) * 1000
}

// fileSetup creates a page file holding numPages pages filled by createPage.
func fileSetup(path string, numPages int) error {

	if err := pagefile.Create(path, pagefile.Options{}); err != nil {
		return err
	}

	pageFile, err := pagefile.Open(path, pagefile.Options{})
	if err != nil {
		return err
	}

	if err := pageFile.EnsureCapacity(numPages); err != nil {
		return errors.Join(err, pageFile.Close())
	}

	for i := range numPages {
		if err := pageFile.WriteBlock(PageNumber(i), createPage(pageStart(PageNumber(i)))); err != nil {
			return errors.Join(err, pageFile.Close())
		}
	}

	return pageFile.Close()
}

var errInjected = errors.New("injected failure")

// fakeDisk is an in memory DiskManager whose reads and writes can be made to fail.
type fakeDisk struct {
	pages [][]byte

	failWrites bool
	failReads  bool
	closed     bool

	reads  int
	writes int
}

func newFakeDisk(numPages int) *fakeDisk {

	disk := &fakeDisk{}
	for i := range numPages {
		disk.pages = append(disk.pages, createPage(pageStart(PageNumber(i))))
	}
	return disk
}

func (disk *fakeDisk) ReadBlock(pageNum PageNumber, buffer []byte) error {

	if disk.failReads {
		return errInjected
	}

	if pageNum < 0 || int(pageNum) >= len(disk.pages) {
		return fmt.Errorf("%w: page %d", pagefile.ErrReadNonExistingPage, pageNum)
	}

	copy(buffer, disk.pages[pageNum])
	disk.reads++
	return nil
}

func (disk *fakeDisk) WriteBlock(pageNum PageNumber, buffer []byte) error {

	if disk.failWrites {
		return fmt.Errorf("%w: %v", ErrWriteFailed, errInjected)
	}

	if pageNum < 0 || int(pageNum) >= len(disk.pages) {
		return fmt.Errorf("%w: page %d", ErrWriteFailed, pageNum)
	}

	copy(disk.pages[pageNum], buffer)
	disk.writes++
	return nil
}

func (disk *fakeDisk) EnsureCapacity(numPages int) error {

	for len(disk.pages) < numPages {
		disk.pages = append(disk.pages, make([]byte, PAGE_SIZE))
	}
	return nil
}

func (disk *fakeDisk) Name() string {
	return "fake"
}

func (disk *fakeDisk) Close() error {

	disk.closed = true
	return nil
}
