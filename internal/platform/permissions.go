package platform

import (
	"os"
	"runtime"
)

// Restrict narrows the permissions of path to mode. Windows has no Unix
// permission bits; there it only checks that path exists.
func Restrict(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		_, err := os.Stat(path)
		return err
	}
	return os.Chmod(path, mode)
}
