//go:build linux
// +build linux

package pagefile

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data to stable storage. Metadata is only flushed when needed
// to retrieve the data, which is all a page file requires.
func syncFile(file *os.File) error {
	return unix.Fdatasync(int(file.Fd()))
}
