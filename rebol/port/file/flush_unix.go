//go:build linux || freebsd

package file

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync performs file descriptor sync.
//
// On Linux/FreeBSD, fdatasync() provides sufficient guarantees without
// forcing a metadata flush.
func fdatasync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
