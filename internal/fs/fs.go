package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is used for files that do not exist yet.
const DefaultFileMode iofs.FileMode = 0o644

// maxLinkHops bounds symlink resolution for links whose target is missing.
const maxLinkHops = 40

// ErrNotRegular is returned for paths that exist but are not regular files.
var ErrNotRegular = errors.New("not a regular file")

// ReadFile reads the whole file at path. Errors are returned unchanged so that
// callers can test them with errors.Is(err, fs.ErrNotExist). Anything other
// than a regular file is refused before it is opened, so a FIFO or device
// never blocks the read.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", &iofs.PathError{Op: "read", Path: path, Err: ErrNotRegular}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsNotExist reports whether err means the file does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

// WriteFileAtomic replaces the content of path with data. The data is written
// to a temporary file in the same directory and renamed over the target, so
// readers never observe a partially written file. If path is a symlink, its
// target is replaced, and a dangling link gets its target created.
//
// The file is rewritten in place instead when a rename would change what the
// file is: it has other hard links, belongs to another user, or the directory
// does not allow creating the temporary file.
func WriteFileAtomic(path string, data []byte) error {
	target, info, err := resolveTarget(path)
	if err != nil {
		return err
	}
	mode := DefaultFileMode
	if info != nil {
		mode = info.Mode() & (iofs.ModePerm | iofs.ModeSetuid | iofs.ModeSetgid | iofs.ModeSticky)
		if keepInPlace(info) {
			return writeInPlace(target, data)
		}
	}

	err = writeReplace(target, data, mode)
	if info != nil && errors.Is(err, iofs.ErrPermission) {
		return writeInPlace(target, data)
	}
	return err
}

// writeReplace writes data to a temporary file next to target and renames it
// over target.
func writeReplace(target string, data []byte, mode iofs.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".insort-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}

// writeInPlace truncates target and writes data through the existing inode,
// keeping its links, owner and permissions.
func writeInPlace(target string, data []byte) error {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// resolveTarget follows symlinks and returns the path to write. info is nil
// when the target does not exist yet.
func resolveTarget(path string) (string, iofs.FileInfo, error) {
	target, err := followLinks(path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(target)
	if err != nil {
		if IsNotExist(err) {
			return target, nil, nil
		}
		return "", nil, err
	}
	if !info.Mode().IsRegular() {
		return "", nil, &iofs.PathError{Op: "write", Path: path, Err: ErrNotRegular}
	}
	return target, info, nil
}

// followLinks resolves path through any chain of symlinks, including one that
// ends at a missing file.
func followLinks(path string) (string, error) {
	for i := 0; i < maxLinkHops; i++ {
		info, err := os.Lstat(path)
		if err != nil {
			if IsNotExist(err) {
				return path, nil
			}
			return "", err
		}
		if info.Mode()&iofs.ModeSymlink == 0 {
			return path, nil
		}
		dest, err := os.Readlink(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", &iofs.PathError{Op: "readlink", Path: path, Err: errors.New("too many levels of symbolic links")}
}
