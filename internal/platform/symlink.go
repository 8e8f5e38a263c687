package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Symlink creates link pointing to target. A relative target is resolved
// against the directory of link, as os.Symlink does.
//
// Windows refuses symlinks outside developer mode; there the target file is
// copied instead so extracted trees stay usable.
func Symlink(target, link string) error {
	err := os.Symlink(target, link)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}
	if copyErr := copyLinkTarget(target, link); copyErr != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", copyErr)
	}
	return nil
}

func copyLinkTarget(target, link string) error {
	src := target
	if !filepath.IsAbs(src) {
		src = filepath.Join(filepath.Dir(link), target)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := os.OpenFile(link, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
