//go:build unix

package opendir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/containers/opendir/pkg/pathnorm"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

func openFollow(path string) (*Dir, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, &Error{Kind: MalformedInput, Op: "opendir", Path: path, Errno: unix.EILSEQ}
	}
	fd, err := openDirectory(path, 0)
	if err != nil {
		return nil, newError("opendir", path, err)
	}
	return newDir(fd, path)
}

func openNoFollow(path string, limit int) (*Dir, error) {
	p, err := pathnorm.Normalize(path)
	if err != nil {
		return nil, normalizeError(path, err)
	}
	if n := p.Len(); n > limit {
		return nil, &Error{
			Kind:  PathTooLong,
			Op:    "opendir",
			Path:  path,
			Errno: unix.ENAMETOOLONG,
			Err:   fmt.Errorf("normalized path is %d bytes, limit is %d", n, limit),
		}
	}

	var cursor strings.Builder
	cursor.Grow(p.Len())
	last := len(p) - 1
	for i, c := range p {
		cursor.WriteString(c.String())
		// The root marker and ".." are not entries of their own.
		if i == last || c.Kind != pathnorm.Name {
			continue
		}
		if err := verifyDirectory(cursor.String()); err != nil {
			return nil, err
		}
	}

	target := cursor.String()
	fd, err := openDirectory(target, unix.O_NOFOLLOW)
	if err != nil {
		return nil, newError("open", target, err)
	}
	return newDir(fd, target)
}

func openInRoot(root, path string, followSymlinks bool, limit int) (*Dir, error) {
	if root == "" {
		return nil, &Error{Kind: InvalidPath, Op: "opendir", Path: path, Errno: unix.EINVAL, Err: errors.New("empty root")}
	}
	if strings.IndexByte(root, 0) >= 0 || strings.IndexByte(path, 0) >= 0 {
		return nil, &Error{Kind: MalformedInput, Op: "opendir", Path: path, Errno: unix.EILSEQ}
	}

	if followSymlinks {
		full, err := securejoin.SecureJoin(root, path)
		if err != nil {
			return nil, newError("securejoin", path, err)
		}
		logrus.Debugf("Resolved %q in root %q to %q", path, root, full)
		return openFollow(full)
	}

	rel, err := pathnorm.Normalize(path)
	if err != nil {
		return nil, normalizeError(path, err)
	}
	for _, c := range rel {
		if c.Kind == pathnorm.Parent {
			return nil, &Error{
				Kind:  InvalidPath,
				Op:    "opendir",
				Path:  path,
				Errno: unix.EINVAL,
				Err:   fmt.Errorf("%q escapes root %q", path, root),
			}
		}
	}
	return openNoFollow(strings.TrimSuffix(root, "/")+"/"+strings.TrimPrefix(rel.String(), "/"), limit)
}

// verifyDirectory fails unless prefix is a directory. lstat(2) reports a
// symlink as a symlink, so a link to a directory is rejected too.
func verifyDirectory(prefix string) error {
	var st unix.Stat_t
	err := ignoringEINTR(func() error {
		return unix.Lstat(prefix, &st)
	})
	if err != nil {
		logrus.Debugf("Verifying %q: %v", prefix, err)
		return newError("lstat", prefix, err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		logrus.Debugf("Verifying %q: mode %#o is not a directory", prefix, st.Mode)
		return &Error{Kind: NotADirectory, Op: "lstat", Path: prefix, Errno: unix.ENOTDIR}
	}
	return nil
}

func openDirectory(path string, flags int) (int, error) {
	var fd int
	err := ignoringEINTR(func() error {
		var err error
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC|flags, 0)
		return err
	})
	return fd, err
}

func normalizeError(path string, err error) *Error {
	if errors.Is(err, pathnorm.ErrMalformedInput) {
		return &Error{Kind: MalformedInput, Op: "opendir", Path: path, Errno: unix.EILSEQ, Err: err}
	}
	return &Error{Kind: InvalidPath, Op: "opendir", Path: path, Errno: unix.EINVAL, Err: err}
}

func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}
