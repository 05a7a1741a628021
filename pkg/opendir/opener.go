// Package opendir opens directory handles while optionally refusing to
// traverse symbolic links anywhere in the path.
//
// In no-follow mode the path is first normalized lexically (see package
// pathnorm), then every intermediate name is checked with lstat(2) to be a
// real directory, and finally the full path is opened with O_NOFOLLOW and
// O_DIRECTORY. A symlink in any position, including the last one, makes
// the open fail.
//
// Entries read from a Dir never include "." and "..".
//
// The verification walk runs to completion or failure and is never
// retried: a caller that retries must accept that the race being defended
// against may reappear between attempts.
package opendir

import (
	"github.com/sirupsen/logrus"
)

// Opener opens directories. The zero value uses PathMax as its limit.
type Opener struct {
	// MaxPathLen bounds the length of the normalized path in no-follow mode.
	MaxPathLen int
}

// NewOpener returns an Opener limited to maxPathLen bytes. A non-positive
// value selects PathMax().
func NewOpener(maxPathLen int) *Opener {
	if maxPathLen <= 0 {
		maxPathLen = PathMax()
	}
	return &Opener{MaxPathLen: maxPathLen}
}

// DefaultOpener returns an Opener bounded by the platform limit.
func DefaultOpener() *Opener {
	return NewOpener(0)
}

// Open opens the directory at path using the default opener.
func Open(path string, followSymlinks bool) (*Dir, error) {
	return DefaultOpener().Open(path, followSymlinks)
}

// OpenInRoot opens path below root using the default opener.
func OpenInRoot(root, path string, followSymlinks bool) (*Dir, error) {
	return DefaultOpener().OpenInRoot(root, path, followSymlinks)
}

// Open opens the directory at path. With followSymlinks the path is passed
// straight to open(2), as opendir(3) would. Without it, the verified walk
// described in the package documentation is used.
func (o *Opener) Open(path string, followSymlinks bool) (*Dir, error) {
	if followSymlinks {
		return openFollow(path)
	}
	logrus.Debugf("Opening directory %q without following symlinks", path)
	return openNoFollow(path, o.limit())
}

// OpenInRoot opens path interpreted relative to root; a leading slash in
// path refers to root itself. In follow mode symlinks are resolved inside
// root so they cannot point outside of it. In no-follow mode path may not
// climb above root with "..", and the components of root are verified
// like any other intermediate component.
func (o *Opener) OpenInRoot(root, path string, followSymlinks bool) (*Dir, error) {
	return openInRoot(root, path, followSymlinks, o.limit())
}

func (o *Opener) limit() int {
	if o == nil || o.MaxPathLen <= 0 {
		return PathMax()
	}
	return o.MaxPathLen
}
