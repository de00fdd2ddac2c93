//go:build !linux && !freebsd && !darwin && !windows

package file

import "os"

// fdatasync falls back to the portable full fsync where no cheaper
// data-only sync is available.
func fdatasync(f *os.File) error {
	return f.Sync()
}
