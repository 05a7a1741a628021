//go:build !unix

package opendir

import (
	"errors"
	"io/fs"
)

var errNotSupported = errors.New("opendir is not supported on this platform")

func openFollow(path string) (*Dir, error) {
	return nil, &Error{Op: "opendir", Path: path, Err: errNotSupported}
}

func openNoFollow(path string, _ int) (*Dir, error) {
	return nil, &Error{Op: "opendir", Path: path, Err: errNotSupported}
}

func openInRoot(_, path string, _ bool, _ int) (*Dir, error) {
	return nil, &Error{Op: "opendir", Path: path, Err: errNotSupported}
}

// Entry describes a directory entry.
type Entry struct {
	Name string
	Mode fs.FileMode
	Size int64
	Ino  uint64
}

// IsSymlink reports whether the entry itself is a symbolic link.
func (e *Entry) IsSymlink() bool {
	return e.Mode&fs.ModeSymlink != 0
}

// Lstat is not supported on this platform.
func (d *Dir) Lstat(name string) (*Entry, error) {
	return nil, &Error{Op: "fstatat", Path: name, Err: errNotSupported}
}
