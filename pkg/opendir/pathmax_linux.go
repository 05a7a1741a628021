package opendir

import "golang.org/x/sys/unix"

// Linux has no pathconf(2); glibc answers _PC_PATH_MAX with PATH_MAX.
func platformPathMax() (int, error) {
	return unix.PathMax, nil
}
