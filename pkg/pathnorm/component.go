package pathnorm

import "strings"

// Kind tags a single component of a normalized path.
type Kind uint8

const (
	// Separator is one collapsed run of slashes, or the leading root marker.
	Separator Kind = iota
	// Name is a real path segment that is neither "." nor "..".
	Name
	// Parent is a ".." that could not be collapsed against a preceding Name.
	Parent
)

func (k Kind) String() string {
	switch k {
	case Separator:
		return "separator"
	case Name:
		return "name"
	case Parent:
		return "parent"
	}
	return "unknown"
}

// Component is one element of a normalized path.
type Component struct {
	Kind Kind
	// Name is only set for components of kind Name.
	Name string
}

var (
	separator = Component{Kind: Separator}
	parent    = Component{Kind: Parent}
)

// String returns the textual form of the component.
func (c Component) String() string {
	switch c.Kind {
	case Separator:
		return "/"
	case Parent:
		return ".."
	}
	return c.Name
}

func (c Component) len() int {
	switch c.Kind {
	case Separator:
		return 1
	case Parent:
		return 2
	}
	return len(c.Name)
}

// Path is a normalized path: an ordered list of components with no two
// adjacent separators, no "." and no collapsible "..".
type Path []Component

// String re-concatenates the components.
func (p Path) String() string {
	var b strings.Builder
	b.Grow(p.Len())
	for _, c := range p {
		b.WriteString(c.String())
	}
	return b.String()
}

// Len returns the length in bytes of p.String() without building it.
func (p Path) Len() int {
	n := 0
	for _, c := range p {
		n += c.len()
	}
	return n
}

// IsAbs reports whether p starts at the root.
func (p Path) IsAbs() bool {
	return len(p) > 0 && p[0].Kind == Separator
}

// Last returns the final component. It panics on an empty path, which
// Normalize never returns.
func (p Path) Last() Component {
	return p[len(p)-1]
}
