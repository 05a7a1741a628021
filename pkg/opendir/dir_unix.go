//go:build unix

package opendir

import (
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// newDir takes ownership of fd. The descriptor is closed if it cannot be
// turned into a Dir.
func newDir(fd int, name string) (*Dir, error) {
	f := os.NewFile(uintptr(fd), name)
	if f == nil {
		unix.Close(fd) //nolint:errcheck
		return nil, &Error{Kind: AlreadyClosed, Op: "fdopendir", Path: name, Errno: unix.EBADF}
	}
	return &Dir{f: f, fd: fd, name: name}, nil
}

// Entry describes a directory entry without following it if it is a
// symlink.
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

// Lstat looks up name inside d with fstatat(2) relative to the open
// descriptor, so the directory path is not resolved again.
func (d *Dir) Lstat(name string) (*Entry, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, '/') {
		return nil, &Error{Kind: InvalidPath, Op: "fstatat", Path: name, Errno: unix.EINVAL}
	}
	if strings.IndexByte(name, 0) >= 0 {
		return nil, &Error{Kind: MalformedInput, Op: "fstatat", Path: name, Errno: unix.EILSEQ}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil, closedError("fstatat")
	}
	var st unix.Stat_t
	err := ignoringEINTR(func() error {
		return unix.Fstatat(d.fd, name, &st, unix.AT_SYMLINK_NOFOLLOW)
	})
	if err != nil {
		return nil, newError("fstatat", name, err)
	}
	return &Entry{
		Name: name,
		Mode: fileMode(uint32(st.Mode)),
		Size: st.Size,
		Ino:  uint64(st.Ino),
	}, nil
}

func fileMode(mode uint32) fs.FileMode {
	m := fs.FileMode(mode & 0o777)
	switch mode & unix.S_IFMT {
	case unix.S_IFBLK:
		m |= fs.ModeDevice
	case unix.S_IFCHR:
		m |= fs.ModeDevice | fs.ModeCharDevice
	case unix.S_IFDIR:
		m |= fs.ModeDir
	case unix.S_IFIFO:
		m |= fs.ModeNamedPipe
	case unix.S_IFLNK:
		m |= fs.ModeSymlink
	case unix.S_IFSOCK:
		m |= fs.ModeSocket
	}
	if mode&unix.S_ISGID != 0 {
		m |= fs.ModeSetgid
	}
	if mode&unix.S_ISUID != 0 {
		m |= fs.ModeSetuid
	}
	if mode&unix.S_ISVTX != 0 {
		m |= fs.ModeSticky
	}
	return m
}
