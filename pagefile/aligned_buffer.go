package pagefile

import (
	"unsafe"

	"github.com/ncw/directio"
)

// NewPageBuffer returns a zeroed PAGE_SIZE buffer whose starting address is aligned
// for direct I/O. Frames and scratch buffers are allocated this way so that the same
// buffer can be handed to the page file whether or not it was opened with O_DIRECT.
func NewPageBuffer() []byte {
	return directio.AlignedBlock(PAGE_SIZE)
}

// directio.AlignSize is 0 on darwin, which uses F_NOCACHE instead of O_DIRECT.
var alignSize uintptr = directio.AlignSize

// returns offset in memory page where starting address of buffer begins.
func findOffset(buffer []byte) uintptr {
	return uintptr(unsafe.Pointer(&buffer[0])) % alignSize
}

func isAligned(buffer []byte) bool {

	if alignSize == 0 {
		return true
	}
	return findOffset(buffer) == 0
}
