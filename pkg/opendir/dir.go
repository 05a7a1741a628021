package opendir

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Dir is an open directory stream. It is safe for concurrent use; Close
// may be called any number of times.
type Dir struct {
	mu   sync.Mutex
	f    *os.File
	fd   int
	name string
}

// Name returns the path the directory was opened with. In no-follow mode
// this is the normalized path.
func (d *Dir) Name() string {
	return d.name
}

// Fd returns the underlying descriptor, or -1 once the Dir is closed. The
// descriptor stays owned by the Dir.
func (d *Dir) Fd() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return -1
	}
	return d.fd
}

// ReadNext returns the name of the next entry. At the end of the stream it
// returns ok == false with a nil error. "." and ".." are not reported.
func (d *Dir) ReadNext() (name string, ok bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return "", false, closedError("readdir")
	}
	names, err := d.f.Readdirnames(1)
	if len(names) > 0 {
		return names[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return "", false, nil
	}
	return "", false, newError("readdir", d.name, err)
}

// ReadAll returns the names of all remaining entries.
func (d *Dir) ReadAll() ([]string, error) {
	var names []string
	for {
		name, ok, err := d.ReadNext()
		if err != nil {
			return names, err
		}
		if !ok {
			return names, nil
		}
		names = append(names, name)
	}
}

// Rewind restarts the stream at the first entry.
func (d *Dir) Rewind() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return closedError("rewinddir")
	}
	if _, err := d.f.Seek(0, io.SeekStart); err != nil {
		return newError("rewinddir", d.name, err)
	}
	return nil
}

// Close releases the descriptor. Closing an already closed Dir is a no-op.
func (d *Dir) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	f := d.f
	d.f = nil
	if err := f.Close(); err != nil {
		return newError("closedir", d.name, err)
	}
	return nil
}

func (d *Dir) String() string {
	return fmt.Sprintf("dir: %p", d)
}
