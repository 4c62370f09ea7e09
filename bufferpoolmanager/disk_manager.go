package bufferpoolmanager

import "github.com/shantanoo-sinha/CS-525/pagefile"

// DiskManager is the block storage the buffer pool reads pages from and writes them back to.
type DiskManager interface {
	ReadBlock(pageNum PageNumber, buffer []byte) error
	WriteBlock(pageNum PageNumber, buffer []byte) error

	// EnsureCapacity grows the storage until it holds at least numPages pages.
	EnsureCapacity(numPages int) error

	Name() string
	Close() error
}

var _ DiskManager = (*pagefile.PageFile)(nil)
