//go:build !linux && !darwin
// +build !linux,!darwin

package pagefile

import "os"

func syncFile(file *os.File) error {
	return file.Sync()
}
