package opendir

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultPathMax is used when the platform limit cannot be determined.
const DefaultPathMax = 4096

var (
	pathMax     int
	pathMaxOnce sync.Once
)

// PathMax returns the maximum length in bytes of a path accepted by the
// no-follow opener. The platform is queried once and the result cached.
func PathMax() int {
	pathMaxOnce.Do(func() {
		n, err := platformPathMax()
		if err != nil || n <= 0 {
			logrus.Debugf("Unable to determine platform path length limit (%v), using %d", err, DefaultPathMax)
			n = DefaultPathMax
		}
		pathMax = n
	})
	return pathMax
}
