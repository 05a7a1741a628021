// Package pathnorm lexically normalizes slash separated paths into tagged
// components. It never touches the filesystem: ".." is collapsed against
// the preceding name in the text, not against what is on disk.
package pathnorm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInput indicates the path contains a NUL byte.
	ErrMalformedInput = errors.New("malformed path")
	// ErrInvalidPath indicates the path does not reduce to a final name,
	// e.g. "", "/", ".." or "a/..".
	ErrInvalidPath = errors.New("invalid path")
)

// Normalize collapses path into its canonical component list.
//
// Runs of slashes become a single Separator, "." segments are dropped and
// ".." removes the Name directly before it. A ".." with no Name to remove
// (at the start, after the root or after another "..") is kept as Parent.
// The result never ends in a separator and always ends in a Name.
func Normalize(path string) (Path, error) {
	if i := strings.IndexByte(path, 0); i >= 0 {
		return nil, fmt.Errorf("%w: NUL byte at offset %d of %d", ErrMalformedInput, i, len(path))
	}

	rooted := strings.HasPrefix(path, "/")
	segs := make([]Component, 0, strings.Count(path, "/")+1)
	for rest := path; rest != ""; {
		var seg string
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			seg, rest = rest[:i], rest[i+1:]
		} else {
			seg, rest = rest, ""
		}

		switch seg {
		case "", ".":
		case "..":
			if n := len(segs); n > 0 && segs[n-1].Kind == Name {
				segs = segs[:n-1]
			} else {
				segs = append(segs, parent)
			}
		default:
			segs = append(segs, Component{Kind: Name, Name: seg})
		}
	}

	if len(segs) == 0 || segs[len(segs)-1].Kind != Name {
		return nil, fmt.Errorf("%w: %q has no final name component", ErrInvalidPath, path)
	}

	p := make(Path, 0, 2*len(segs))
	if rooted {
		p = append(p, separator)
	}
	for i, c := range segs {
		if i > 0 {
			p = append(p, separator)
		}
		p = append(p, c)
	}
	return p, nil
}

// Clean is Normalize returning the string form.
func Clean(path string) (string, error) {
	p, err := Normalize(path)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}
