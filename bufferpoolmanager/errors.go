package bufferpoolmanager

import (
	"errors"

	"github.com/shantanoo-sinha/CS-525/pagefile"
)

var (
	ErrInvalidConfiguration = errors.New("invalid buffer pool configuration")
	ErrNonExistingStrategy  = errors.New("non existing replacement strategy")
	ErrInvalidPageNumber    = errors.New("invalid page number")
	ErrPageNotResident      = errors.New("page not resident in buffer pool")
	ErrNoFreeFrame          = errors.New("no free frame: every frame is pinned")
	ErrInvalidPool          = errors.New("buffer pool is not initialized or already shut down")
	ErrStaleHandle          = errors.New("page handle refers to a frame that was reassigned")
	ErrPagesPinned          = errors.New("pages are still pinned")

	// storage errors are surfaced unchanged.
	ErrFileNotFound = pagefile.ErrFileNotFound
	ErrWriteFailed  = pagefile.ErrWriteFailed
)
