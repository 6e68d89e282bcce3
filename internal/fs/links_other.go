//go:build !unix

package fs

import iofs "io/fs"

func keepInPlace(iofs.FileInfo) bool {
	return false
}
