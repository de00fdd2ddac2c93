//go:build darwin

package file

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync performs file descriptor sync.
//
// On macOS, F_FULLFSYNC ensures data is written to the physical disk,
// not just the drive cache.
func fdatasync(f *os.File) error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
