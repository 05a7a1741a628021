//go:build !linux

package opendir

import "errors"

func platformPathMax() (int, error) {
	return 0, errors.New("path length limit is not known on this platform")
}
