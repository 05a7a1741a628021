package opendir

import (
	"errors"
	"fmt"
	"syscall"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// KindUnknown is an OS failure with no more specific kind.
	KindUnknown Kind = iota
	// MalformedInput indicates a NUL byte inside the path.
	MalformedInput
	// InvalidPath indicates a path that does not normalize to a final name.
	InvalidPath
	// PathTooLong indicates the normalized path exceeds the length limit.
	PathTooLong
	// NotADirectory indicates a component is not a real directory. A
	// symlink in an intermediate position is reported this way.
	NotADirectory
	// NotFound indicates a component does not exist.
	NotFound
	// PermissionDenied indicates a component could not be searched or opened.
	PermissionDenied
	// TooManySymlinks indicates ELOOP from the OS.
	TooManySymlinks
	// AlreadyClosed indicates an operation on a closed Dir.
	AlreadyClosed
)

var kindNames = map[Kind]string{
	KindUnknown:      "unknown",
	MalformedInput:   "malformed input",
	InvalidPath:      "invalid path",
	PathTooLong:      "path too long",
	NotADirectory:    "not a directory",
	NotFound:         "not found",
	PermissionDenied: "permission denied",
	TooManySymlinks:  "too many symlinks",
	AlreadyClosed:    "already closed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	// ErrMalformedInput matches errors of kind MalformedInput.
	ErrMalformedInput = &Error{Kind: MalformedInput}
	// ErrInvalidPath matches errors of kind InvalidPath.
	ErrInvalidPath = &Error{Kind: InvalidPath}
	// ErrPathTooLong matches errors of kind PathTooLong.
	ErrPathTooLong = &Error{Kind: PathTooLong}
	// ErrNotADirectory matches errors of kind NotADirectory.
	ErrNotADirectory = &Error{Kind: NotADirectory}
	// ErrNotFound matches errors of kind NotFound.
	ErrNotFound = &Error{Kind: NotFound}
	// ErrPermissionDenied matches errors of kind PermissionDenied.
	ErrPermissionDenied = &Error{Kind: PermissionDenied}
	// ErrTooManySymlinks matches errors of kind TooManySymlinks.
	ErrTooManySymlinks = &Error{Kind: TooManySymlinks}
	// ErrAlreadyClosed matches errors of kind AlreadyClosed.
	ErrAlreadyClosed = &Error{Kind: AlreadyClosed}
)

// Error is the failure returned by every operation in this package. The
// OS error code is preserved in Errno and Op names the call that failed.
type Error struct {
	Kind  Kind
	Op    string
	Path  string
	Errno syscall.Errno
	// Err optionally carries a more descriptive cause than Errno.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Err != nil:
		msg = e.Err.Error()
	case e.Errno != 0:
		msg = e.Errno.Error()
	}
	if e.Path == "" {
		return e.Op + ": " + msg
	}
	return e.Op + " " + e.Path + ": " + msg
}

// Unwrap exposes the OS error code so that errors.Is(err, unix.ENOTDIR)
// and errors.Is(err, fs.ErrNotExist) work.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Errno != 0 {
		errs = append(errs, e.Errno)
	}
	return errs
}

// Is matches any *Error of the same Kind, so the package sentinels can be
// used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func kindFromErrno(errno syscall.Errno) Kind {
	switch errno {
	case syscall.ENOENT:
		return NotFound
	case syscall.EACCES, syscall.EPERM:
		return PermissionDenied
	case syscall.ELOOP:
		return TooManySymlinks
	case syscall.ENOTDIR:
		return NotADirectory
	case syscall.ENAMETOOLONG:
		return PathTooLong
	case syscall.EILSEQ:
		return MalformedInput
	case syscall.EINVAL:
		return InvalidPath
	case syscall.EBADF:
		return AlreadyClosed
	}
	return KindUnknown
}

// newError wraps err, which is expected to be (or wrap) a syscall.Errno.
func newError(op, path string, err error) *Error {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &Error{Kind: kindFromErrno(errno), Op: op, Path: path, Errno: errno}
	}
	return &Error{Kind: KindUnknown, Op: op, Path: path, Err: err}
}

func closedError(op string) *Error {
	return &Error{Kind: AlreadyClosed, Op: op, Errno: syscall.EBADF}
}
