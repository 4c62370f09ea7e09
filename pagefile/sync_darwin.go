//go:build darwin
// +build darwin

package pagefile

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile asks the drive to flush its write cache, fsync alone does not on darwin.
func syncFile(file *os.File) error {

	if _, err := unix.FcntlInt(file.Fd(), unix.F_FULLFSYNC, 0); err != nil {
		// some file systems (e.g. network mounts) reject F_FULLFSYNC.
		return file.Sync()
	}
	return nil
}
