//go:build unix

package fs

import (
	iofs "io/fs"
	"os"
	"syscall"
)

// keepInPlace reports whether replacing the file by rename would split hard
// links or hand the file to the current user.
func keepInPlace(info iofs.FileInfo) bool {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return st.Nlink > 1 || int(st.Uid) != os.Geteuid()
}
